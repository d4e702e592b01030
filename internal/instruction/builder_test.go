package instruction

import (
	"encoding/binary"
	"testing"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/model"
	"frantik-client-sol/internal/pda"
	"frantik-client-sol/internal/types"
)

func pk(b byte) types.Pubkey {
	var p types.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

func testBuilder() *Builder {
	return NewBuilder(&pda.Deriver{
		Program:    consts.FrantikProgram,
		FrackHouse: pk(0x10),
	})
}

// assertFlags 校验指令账户的 signer/writable 标志与账户表逐位一致
func assertFlags(t *testing.T, ix sdktypes.Instruction, layout []Slot) {
	t.Helper()
	require.GreaterOrEqual(t, len(ix.Accounts), len(layout))
	for i, slot := range layout {
		assert.Equal(t, slot.Signer, ix.Accounts[i].IsSigner, "slot %d (%s) signer", i, slot.Name)
		assert.Equal(t, slot.Writable, ix.Accounts[i].IsWritable, "slot %d (%s) writable", i, slot.Name)
	}
}

func at(ix sdktypes.Instruction, i int) types.Pubkey {
	return types.FromCommon(ix.Accounts[i].PubKey)
}

func TestInitFractionManager(t *testing.T) {
	b := testBuilder()
	p := InitFractionManagerParams{
		Vault:                pk(1),
		TokenMint:            pk(2),
		ExternalPriceAccount: pk(3),
		FractionMint:         pk(4),
		Authority:            pk(5),
		Payer:                pk(6),
	}

	var out []sdktypes.Instruction
	require.NoError(t, b.InitFractionManager(p, &out))
	require.Len(t, out, 1)

	ix := out[0]
	require.Len(t, ix.Accounts, len(InitFractionManagerLayout))
	assertFlags(t, ix, InitFractionManagerLayout)
	assert.Equal(t, []byte{OpInitFractionManager}, ix.Data)
	assert.Equal(t, consts.FrantikProgram.Common(), ix.ProgramID)

	managerKey, err := b.Deriver.FractionManagerKey(p.Vault)
	require.NoError(t, err)
	assert.Equal(t, managerKey, at(ix, 0))
	assert.Equal(t, p.Vault, at(ix, 1))
	assert.Equal(t, p.FractionMint, at(ix, 4))
	assert.Equal(t, p.Authority, at(ix, 5))
	assert.Equal(t, b.Deriver.FrackHouse, at(ix, 7))
	assert.Equal(t, consts.SystemProgram, at(ix, 8))
	assert.Equal(t, consts.RentSysvar, at(ix, 9))
}

func TestValidateSafetyDepositBox(t *testing.T) {
	b := testBuilder()
	p := ValidateSafetyDepositBoxParams{
		Vault:                   pk(1),
		Metadata:                pk(2),
		SafetyDepositBox:        pk(3),
		SafetyDepositTokenStore: pk(4),
		TokenMint:               pk(5),
		Edition:                 pk(6),
		ManagerAuthority:        pk(7),
		MetadataAuthority:       pk(8),
		Payer:                   pk(9),
		Config: model.FractionSafetyDepositConfig{
			Key:               model.KeyFractionSafetyDepositConfigV1,
			Order:             1,
			WinningConfigType: model.FullRightsBuyout,
		},
	}

	var out []sdktypes.Instruction
	require.NoError(t, b.ValidateSafetyDepositBox(p, &out))
	require.Len(t, out, 1)

	ix := out[0]
	require.Len(t, ix.Accounts, len(ValidateSafetyDepositBoxLayout))
	assertFlags(t, ix, ValidateSafetyDepositBoxLayout)

	// 载荷：opcode + 内嵌的 config 记录
	require.Len(t, ix.Data, 1+model.SafetyDepositConfigLen)
	assert.Equal(t, OpValidateSafetyDepositBox, ix.Data[0])

	// 未提供白名单账户时该槽位填 system program
	assert.Equal(t, consts.SystemProgram, at(ix, 4))
	assert.Equal(t, p.SafetyDepositBox, at(ix, 6))
	assert.Equal(t, p.Payer, at(ix, 13))

	// 提供白名单账户时原样放入
	fracker := pk(0x99)
	p.WhitelistedFracker = &fracker
	out = nil
	require.NoError(t, b.ValidateSafetyDepositBox(p, &out))
	assert.Equal(t, fracker, at(out[0], 4))
}

func TestVaultBuyoutTreasuryVariant(t *testing.T) {
	b := testBuilder()
	p := VaultBuyoutParams{
		Kind:                    RedeemToken,
		FractionManager:         pk(1),
		SafetyDepositTokenStore: pk(2),
		SafetyDeposit:           pk(3),
		RedeemTreasury:          pk(4),
		FractionTreasury:        pk(5),
		Vault:                   pk(6),
		MasterMetadata:          pk(7),
		FractionMint:            pk(8),
		PriceMint:               pk(9),
		ExternalPriceAccount:    pk(10),
		OutstandingShareAccount: pk(11),
		BurnAuthority:           pk(12),
		VaultAuthority:          pk(13),
		CentralFeeAdmin:         pk(14),
		Payer:                   pk(15),
	}

	var out []sdktypes.Instruction
	require.NoError(t, b.VaultBuyout(p, &out))
	require.Len(t, out, 1)

	ix := out[0]
	require.Len(t, ix.Accounts, len(VaultBuyoutLayout))
	assertFlags(t, ix, VaultBuyoutLayout)
	assert.Equal(t, []byte{OpRedeemTokenBuyout}, ix.Data)

	assert.Equal(t, p.RedeemTreasury, at(ix, 3))
	assert.Equal(t, p.FractionTreasury, at(ix, 4))
	assert.Equal(t, p.CentralFeeAdmin, at(ix, 19))
	assert.Equal(t, p.Payer, at(ix, 22))
}

// 直转变体：destination 取代 treasuries，可选尾部账户按序追加
func TestVaultBuyoutFullRightsVariant(t *testing.T) {
	b := testBuilder()
	destination := pk(0x20)
	payerToken := pk(0x21)
	p := VaultBuyoutParams{
		Kind:                    RedeemFullRights,
		FractionManager:         pk(1),
		SafetyDepositTokenStore: pk(2),
		SafetyDeposit:           pk(3),
		Destination:             &destination,
		Vault:                   pk(6),
		MasterMetadata:          pk(7),
		FractionMint:            pk(8),
		PriceMint:               pk(9),
		ExternalPriceAccount:    pk(10),
		OutstandingShareAccount: pk(11),
		BurnAuthority:           pk(12),
		VaultAuthority:          pk(13),
		CentralFeeAdmin:         pk(14),
		Payer:                   pk(15),
		PayerTokenAccount:       &payerToken,
		CreatorAccounts:         []types.Pubkey{pk(0x30), pk(0x31)},
	}

	var out []sdktypes.Instruction
	require.NoError(t, b.VaultBuyout(p, &out))
	ix := out[0]

	require.Len(t, ix.Accounts, len(FullRightsTokenTransferLayout)+3)
	assertFlags(t, ix, FullRightsTokenTransferLayout)
	assert.Equal(t, []byte{OpRedeemFullRightsBuyout}, ix.Data)

	assert.Equal(t, destination, at(ix, 3))
	assert.Equal(t, p.MasterMetadata, at(ix, 5))

	// payerTokenAccount 可写不签名，creator 账户只读
	n := len(FullRightsTokenTransferLayout)
	assert.Equal(t, payerToken, at(ix, n))
	assert.True(t, ix.Accounts[n].IsWritable)
	assert.False(t, ix.Accounts[n].IsSigner)
	assert.Equal(t, pk(0x30), at(ix, n+1))
	assert.Equal(t, pk(0x31), at(ix, n+2))
	assert.False(t, ix.Accounts[n+1].IsWritable)
	assert.False(t, ix.Accounts[n+2].IsWritable)
}

// BurnAuthority 未给时按 vault 派生 transfer authority PDA 填槽，给了则原样放入
func TestVaultBuyoutResolvesBurnAuthority(t *testing.T) {
	b := testBuilder()
	p := VaultBuyoutParams{
		Kind:                    RedeemToken,
		FractionManager:         pk(1),
		SafetyDepositTokenStore: pk(2),
		SafetyDeposit:           pk(3),
		RedeemTreasury:          pk(4),
		FractionTreasury:        pk(5),
		Vault:                   pk(6),
		VaultAuthority:          pk(13),
		CentralFeeAdmin:         pk(14),
		Payer:                   pk(15),
	}

	var out []sdktypes.Instruction
	require.NoError(t, b.VaultBuyout(p, &out))

	derived, err := pda.VaultTransferAuthority(consts.TokenVaultProgram, p.Vault)
	require.NoError(t, err)
	assert.Equal(t, derived, at(out[0], 15))

	p.BurnAuthority = pk(0x77)
	out = nil
	require.NoError(t, b.VaultBuyout(p, &out))
	assert.Equal(t, pk(0x77), at(out[0], 15))
}

func TestSetFrackHouse(t *testing.T) {
	b := testBuilder()

	var out []sdktypes.Instruction
	require.NoError(t, b.SetFrackHouse(pk(1), pk(2), pk(3), true, &out))
	require.Len(t, out, 1)

	ix := out[0]
	require.Len(t, ix.Accounts, len(SetFrackHouseLayout))
	assertFlags(t, ix, SetFrackHouseLayout)
	assert.Equal(t, []byte{OpSetFrackHouse, 1}, ix.Data)
	assert.Equal(t, b.Deriver.FrackHouse, at(ix, 0))
	assert.Equal(t, pk(3), at(ix, 1))
}

func TestSetFrackHouseIndex(t *testing.T) {
	b := testBuilder()

	var out []sdktypes.Instruction
	require.NoError(t, b.SetFrackHouseIndex(pk(1), pk(2), pk(3), 5, 0, nil, nil, &out))
	ix := out[0]
	require.Len(t, ix.Accounts, len(SetFrackHouseIndexLayout))
	assertFlags(t, ix, SetFrackHouseIndexLayout)

	// 载荷：opcode + page(u64 LE) + offset(u64 LE)
	require.Len(t, ix.Data, 17)
	assert.Equal(t, OpSetFrackHouseIndex, ix.Data[0])
	assert.Equal(t, uint64(5), binary.LittleEndian.Uint64(ix.Data[1:9]))
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(ix.Data[9:17]))
}

// 可选邻居账户：above 先于 below 追加，均为只读非签名
func TestSetFrackHouseIndexNeighbors(t *testing.T) {
	b := testBuilder()
	above := pk(0x40)
	below := pk(0x41)

	var out []sdktypes.Instruction
	require.NoError(t, b.SetFrackHouseIndex(pk(1), pk(2), pk(3), 0, 0, &above, nil, &out))
	require.Len(t, out[0].Accounts, len(SetFrackHouseIndexLayout)+1)
	assert.Equal(t, above, at(out[0], len(SetFrackHouseIndexLayout)))

	out = nil
	require.NoError(t, b.SetFrackHouseIndex(pk(1), pk(2), pk(3), 0, 0, &above, &below, &out))
	ix := out[0]
	require.Len(t, ix.Accounts, len(SetFrackHouseIndexLayout)+2)
	assert.Equal(t, above, at(ix, len(SetFrackHouseIndexLayout)))
	assert.Equal(t, below, at(ix, len(SetFrackHouseIndexLayout)+1))
	assert.False(t, ix.Accounts[len(SetFrackHouseIndexLayout)].IsSigner)
	assert.False(t, ix.Accounts[len(SetFrackHouseIndexLayout)+1].IsWritable)
}

func TestSetVaultCache(t *testing.T) {
	b := testBuilder()

	var out []sdktypes.Instruction
	require.NoError(t, b.SetVaultCache(pk(1), pk(2), pk(3), pk(4), pk(5), &out))
	ix := out[0]
	require.Len(t, ix.Accounts, len(SetVaultCacheLayout))
	assertFlags(t, ix, SetVaultCacheLayout)
	assert.Equal(t, []byte{OpSetVaultCache}, ix.Data)
	assert.Equal(t, consts.ClockSysvar, at(ix, 8))
}

// frack house 未配置时所有 builder 方法先行报前置条件错误
func TestBuilderRequiresFrackHouse(t *testing.T) {
	b := NewBuilder(&pda.Deriver{Program: consts.FrantikProgram})

	var out []sdktypes.Instruction
	var pre *errs.PreconditionError

	err := b.InitFractionManager(InitFractionManagerParams{}, &out)
	require.ErrorAs(t, err, &pre)
	err = b.SetVaultCache(pk(1), pk(2), pk(3), pk(4), pk(5), &out)
	require.ErrorAs(t, err, &pre)
	err = b.SetFrackHouseIndex(pk(1), pk(2), pk(3), 0, 0, nil, nil, &out)
	require.ErrorAs(t, err, &pre)
	assert.Empty(t, out)
}
