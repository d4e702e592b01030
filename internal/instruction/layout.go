package instruction

import (
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"

	"frantik-client-sol/internal/types"
)

// Slot 描述指令账户表中的一个位置。程序端按位置匹配账户，
// 顺序与 signer/writable 标志都是线上契约，表本身即协议文档。
type Slot struct {
	Name     string
	Signer   bool
	Writable bool
}

// InitFractionManagerLayout 指令 17 的账户表
var InitFractionManagerLayout = []Slot{
	{Name: "fractionManager", Writable: true},
	{Name: "vault"},
	{Name: "tokenMint", Writable: true},
	{Name: "externalPriceAccount", Writable: true},
	{Name: "fractionMint"},
	{Name: "authority", Signer: true},
	{Name: "payer", Signer: true},
	{Name: "frackHouse"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
}

// ValidateSafetyDepositBoxLayout 指令 18 的账户表
var ValidateSafetyDepositBoxLayout = []Slot{
	{Name: "safetyDepositConfig", Writable: true},
	{Name: "fractionManager", Writable: true},
	{Name: "metadata", Writable: true},
	{Name: "originalAuthorityLookup", Writable: true},
	{Name: "whitelistedFracker"}, // 未提供时填 system program
	{Name: "frackHouse"},
	{Name: "safetyDepositBox"},
	{Name: "safetyDepositTokenStore"},
	{Name: "tokenMint"},
	{Name: "edition"},
	{Name: "vault"},
	{Name: "managerAuthority", Signer: true},
	{Name: "metadataAuthority", Signer: true},
	{Name: "payer", Signer: true},
	{Name: "tokenMetadataProgram"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
}

// VaultBuyoutLayout 指令 2/3 买断路径的固定前缀（treasuries 变体）。
// 可选尾部：payerTokenAccount(w)（非原生支付时），之后逐个追加 creator 账户(r)。
var VaultBuyoutLayout = []Slot{
	{Name: "fractionManager", Writable: true},
	{Name: "safetyDepositTokenStore", Writable: true},
	{Name: "safetyDeposit", Writable: true},
	{Name: "redeemTreasury", Writable: true},
	{Name: "fractionTreasury", Writable: true},
	{Name: "vault", Writable: true},
	{Name: "masterMetadata"},
	{Name: "associatedTokenProgram"},
	{Name: "fractionMint"},
	{Name: "priceMint"},
	{Name: "externalPriceAccount"},
	{Name: "outstandingShareAccount", Writable: true},
	{Name: "tokenProgram", Writable: true},
	{Name: "tokenVaultProgram"},
	{Name: "tokenMetadataProgram"},
	{Name: "burnAuthority", Signer: true},
	{Name: "frackHouse"},
	{Name: "vaultAuthority", Signer: true},
	{Name: "safetyDepositConfig"},
	{Name: "centralFeeAdmin"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
	{Name: "payer", Signer: true},
}

// FullRightsTokenTransferLayout 同一买断指令的直转变体：
// destination 取代两个 treasury，metadata 所有权随 token 一并转移。
var FullRightsTokenTransferLayout = []Slot{
	{Name: "fractionManager", Writable: true},
	{Name: "safetyDepositTokenStore", Writable: true},
	{Name: "safetyDeposit", Writable: true},
	{Name: "destination", Writable: true},
	{Name: "vault", Writable: true},
	{Name: "masterMetadata", Writable: true},
	{Name: "associatedTokenProgram"},
	{Name: "fractionMint"},
	{Name: "priceMint"},
	{Name: "externalPriceAccount"},
	{Name: "outstandingShareAccount", Writable: true},
	{Name: "tokenProgram"},
	{Name: "tokenVaultProgram"},
	{Name: "tokenMetadataProgram"},
	{Name: "burnAuthority", Signer: true},
	{Name: "frackHouse"},
	{Name: "vaultAuthority", Signer: true},
	{Name: "safetyDepositConfig"},
	{Name: "centralFeeAdmin"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
	{Name: "payer", Signer: true},
}

// SetFrackHouseLayout 指令 8 的账户表
var SetFrackHouseLayout = []Slot{
	{Name: "frackHouse", Writable: true},
	{Name: "operatingConfig"},
	{Name: "admin", Signer: true},
	{Name: "payer", Signer: true},
	{Name: "tokenProgram"},
	{Name: "tokenVaultProgram"},
	{Name: "tokenMetadataProgram"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
}

// SetFrackHouseIndexLayout 指令 21 的固定前缀。
// 可选尾部：aboveNeighbor(r)、belowNeighbor(r)，按此顺序追加。
var SetFrackHouseIndexLayout = []Slot{
	{Name: "frackHouseIndexer", Writable: true},
	{Name: "payer", Signer: true},
	{Name: "vaultCache"},
	{Name: "frackHouse"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
}

// SetVaultCacheLayout 指令 22 的账户表
var SetVaultCacheLayout = []Slot{
	{Name: "vaultCache", Writable: true},
	{Name: "payer", Signer: true},
	{Name: "vault"},
	{Name: "safetyDepositBox"},
	{Name: "fractionManager"},
	{Name: "frackHouse"},
	{Name: "systemProgram"},
	{Name: "rentSysvar"},
	{Name: "clockSysvar"},
}

// compose 把账户表与同序地址列表压成一条指令，长度不符即视为编程错误
func compose(program types.Pubkey, layout []Slot, addrs []types.Pubkey, data []byte) (sdktypes.Instruction, error) {
	if len(addrs) != len(layout) {
		return sdktypes.Instruction{}, fmt.Errorf("account list mismatch: layout has %d slots, got %d addresses", len(layout), len(addrs))
	}
	metas := make([]sdktypes.AccountMeta, len(layout))
	for i, slot := range layout {
		metas[i] = sdktypes.AccountMeta{
			PubKey:     addrs[i].Common(),
			IsSigner:   slot.Signer,
			IsWritable: slot.Writable,
		}
	}
	return sdktypes.Instruction{
		ProgramID: program.Common(),
		Accounts:  metas,
		Data:      data,
	}, nil
}

func appendMeta(ix *sdktypes.Instruction, addr types.Pubkey, signer, writable bool) {
	ix.Accounts = append(ix.Accounts, sdktypes.AccountMeta{
		PubKey:     addr.Common(),
		IsSigner:   signer,
		IsWritable: writable,
	})
}
