package ledger

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/client"

	"frantik-client-sol/internal/types"
)

// SubmitMode 提交确认级别
type SubmitMode string

const (
	ModeSingle    SubmitMode = "single"    // 单节点确认，交互式流程用
	ModeFinalized SubmitMode = "finalized" // 最终化确认
)

// Account 一次账户读取的结果。Found 为 false 表示账户不存在（不是错误）。
type Account struct {
	Pubkey types.Pubkey
	Data   []byte
	Owner  types.Pubkey
	Found  bool
}

// Client 账本服务适配层：把编排器需要的三个远端能力
// （租金豁免查询、账户读取、交易提交）收口到一个类型上。
type Client struct {
	rpc  *client.Client
	mode SubmitMode
}

func New(endpoint string, mode SubmitMode) *Client {
	if mode == "" {
		mode = ModeSingle
	}
	return &Client{
		rpc:  client.NewClient(endpoint),
		mode: mode,
	}
}

// GetMinimumBalanceForRentExemption 查询指定数据长度的租金豁免额度（lamports）
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, size)
	if err != nil {
		return 0, fmt.Errorf("get minimum balance for rent exemption: %w", err)
	}
	return lamports, nil
}

// GetAccount 读取单个账户。账户不存在返回 Found=false 而非错误。
func (c *Client) GetAccount(ctx context.Context, addr types.Pubkey) (Account, error) {
	info, err := c.rpc.GetAccountInfo(ctx, addr.String())
	if err != nil {
		return Account{}, fmt.Errorf("get account %s: %w", addr, err)
	}
	if len(info.Data) == 0 {
		return Account{Pubkey: addr}, nil
	}
	return Account{
		Pubkey: addr,
		Data:   info.Data,
		Owner:  types.FromCommon(info.Owner),
		Found:  true,
	}, nil
}

// GetAccounts 批量读取账户，返回与入参同序的结果（不存在的账户 Found=false）
func (c *Client) GetAccounts(ctx context.Context, addrs []types.Pubkey) ([]Account, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	strs := make([]string, len(addrs))
	for i, a := range addrs {
		strs[i] = a.String()
	}
	infos, err := c.rpc.GetMultipleAccounts(ctx, strs)
	if err != nil {
		return nil, fmt.Errorf("get multiple accounts: %w", err)
	}
	if len(infos) != len(addrs) {
		return nil, fmt.Errorf("account count mismatch: got %d, want %d", len(infos), len(addrs))
	}
	result := make([]Account, len(addrs))
	for i, info := range infos {
		result[i] = Account{Pubkey: addrs[i]}
		if len(info.Data) > 0 {
			result[i].Data = info.Data
			result[i].Owner = types.FromCommon(info.Owner)
			result[i].Found = true
		}
	}
	return result, nil
}
