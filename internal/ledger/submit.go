package ledger

import (
	"context"
	"fmt"
	"time"

	sdktypes "github.com/blocto/solana-go-sdk/types"

	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/orchestrator"
	"frantik-client-sol/internal/types"
	"frantik-client-sol/pkg/logger"
)

const (
	sendRetryCount = 3
	sendRetryDelay = 500 * time.Millisecond
)

// SubmitTransaction 组装并提交一笔交易：
// 拉取最新 blockhash，按消息头的签名者顺序逐一签名，发送后返回交易签名。
// 第一个 signer 作为手续费支付者。
func (c *Client) SubmitTransaction(
	ctx context.Context,
	instructions []sdktypes.Instruction,
	signers []types.Signer,
) (string, error) {
	if len(instructions) == 0 {
		return "", errs.Precondition("no instructions to submit")
	}
	if len(signers) == 0 {
		return "", errs.Precondition("signer not connected")
	}

	bh, err := c.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}

	msg := sdktypes.NewMessage(sdktypes.NewMessageParam{
		FeePayer:        signers[0].PublicKey().Common(),
		RecentBlockhash: bh.Blockhash,
		Instructions:    instructions,
	})
	raw, err := msg.Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize message: %w", err)
	}

	// 签名顺序必须与消息头声明的签名者顺序一致
	required := int(msg.Header.NumRequireSignatures)
	sigs := make([]sdktypes.Signature, 0, required)
	for i := 0; i < required; i++ {
		account := types.FromCommon(msg.Accounts[i])
		signer := findSigner(signers, account)
		if signer == nil {
			return "", errs.Precondition(fmt.Sprintf("missing signer for account %s", account))
		}
		sig, err := signer.SignMessage(raw)
		if err != nil {
			return "", fmt.Errorf("sign with %s: %w", account, err)
		}
		sigs = append(sigs, sig)
	}

	tx := sdktypes.Transaction{
		Signatures: sigs,
		Message:    msg,
	}
	txSig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	return txSig, nil
}

// SubmitBatch 实现 orchestrator.Submitter。
// 发送失败时做有限次重试，每次重试前重新拉取 blockhash。
func (c *Client) SubmitBatch(ctx context.Context, batch orchestrator.Batch) error {
	var lastErr error
	for attempt := 0; attempt < sendRetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sendRetryDelay):
			}
		}
		sig, err := c.SubmitTransaction(ctx, batch.Instructions, batch.Signers)
		if err == nil {
			logger.Infof("[Ledger] batch submitted, mode=%s, sig=%s", c.mode, sig)
			return nil
		}
		lastErr = err
		logger.Warnf("[Ledger] batch submit failed (attempt %d/%d): %v", attempt+1, sendRetryCount, err)
	}
	return lastErr
}

func findSigner(signers []types.Signer, account types.Pubkey) types.Signer {
	for _, s := range signers {
		if s.PublicKey().Equals(account) {
			return s
		}
	}
	return nil
}
