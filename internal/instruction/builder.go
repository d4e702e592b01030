package instruction

import (
	sdktypes "github.com/blocto/solana-go-sdk/types"

	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/model"
	"frantik-client-sol/internal/pda"
	"frantik-client-sol/internal/types"
)

// Builder 把已校验的领域参数组装成 frantik 指令并追加进调用方的待提交缓冲。
// 所有依赖 frack house 的方法都在派生/编码之前做前置校验。
type Builder struct {
	Deriver *pda.Deriver
}

func NewBuilder(d *pda.Deriver) *Builder {
	return &Builder{Deriver: d}
}

func (b *Builder) requireFrackHouse() error {
	if b.Deriver.FrackHouse.IsZero() {
		return errs.Precondition("frack house not initialized")
	}
	return nil
}

// InitFractionManagerParams 指令 17 的输入。fractionManager 地址由 vault 派生。
type InitFractionManagerParams struct {
	Vault                types.Pubkey
	TokenMint            types.Pubkey
	ExternalPriceAccount types.Pubkey
	FractionMint         types.Pubkey
	Authority            types.Pubkey
	Payer                types.Pubkey
}

func (b *Builder) InitFractionManager(p InitFractionManagerParams, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	managerKey, err := b.Deriver.FractionManagerKey(p.Vault)
	if err != nil {
		return err
	}

	data, err := model.Encode(initFractionManagerArgs{Instruction: OpInitFractionManager})
	if err != nil {
		return err
	}

	ix, err := compose(b.Deriver.Program, InitFractionManagerLayout, []types.Pubkey{
		managerKey,
		p.Vault,
		p.TokenMint,
		p.ExternalPriceAccount,
		p.FractionMint,
		p.Authority,
		p.Payer,
		b.Deriver.FrackHouse,
		consts.SystemProgram,
		consts.RentSysvar,
	}, data)
	if err != nil {
		return err
	}
	*out = append(*out, ix)
	return nil
}

// ValidateSafetyDepositBoxParams 指令 18 的输入。
// WhitelistedFracker 为 nil 时账户表对应位置填 system program。
type ValidateSafetyDepositBoxParams struct {
	Vault                   types.Pubkey
	Metadata                types.Pubkey
	SafetyDepositBox        types.Pubkey
	SafetyDepositTokenStore types.Pubkey
	TokenMint               types.Pubkey
	Edition                 types.Pubkey
	ManagerAuthority        types.Pubkey
	MetadataAuthority       types.Pubkey
	Payer                   types.Pubkey
	WhitelistedFracker      *types.Pubkey
	Config                  model.FractionSafetyDepositConfig
}

func (b *Builder) ValidateSafetyDepositBox(p ValidateSafetyDepositBoxParams, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	managerKey, err := b.Deriver.FractionManagerKey(p.Vault)
	if err != nil {
		return err
	}
	originalAuthority, err := b.Deriver.OriginalAuthorityLookup(p.Vault, p.Metadata)
	if err != nil {
		return err
	}
	configKey, err := b.Deriver.FractionSafetyDepositConfigKey(managerKey, p.SafetyDepositBox)
	if err != nil {
		return err
	}

	data, err := model.Encode(validateSafetyDepositBoxArgs{
		Instruction:         OpValidateSafetyDepositBox,
		SafetyDepositConfig: p.Config,
	})
	if err != nil {
		return err
	}

	whitelisted := consts.SystemProgram
	if p.WhitelistedFracker != nil {
		whitelisted = *p.WhitelistedFracker
	}

	ix, err := compose(b.Deriver.Program, ValidateSafetyDepositBoxLayout, []types.Pubkey{
		configKey,
		managerKey,
		p.Metadata,
		originalAuthority,
		whitelisted,
		b.Deriver.FrackHouse,
		p.SafetyDepositBox,
		p.SafetyDepositTokenStore,
		p.TokenMint,
		p.Edition,
		p.Vault,
		p.ManagerAuthority,
		p.MetadataAuthority,
		p.Payer,
		consts.TokenMetadataProgram,
		consts.SystemProgram,
		consts.RentSysvar,
	}, data)
	if err != nil {
		return err
	}
	*out = append(*out, ix)
	return nil
}

// RedeemKind 买断指令的操作码变体
type RedeemKind uint8

const (
	RedeemToken      RedeemKind = iota // 仅 token，opcode 2
	RedeemFullRights                   // token + metadata 所有权，opcode 3
)

func (k RedeemKind) opcode() uint8 {
	if k == RedeemFullRights {
		return OpRedeemFullRightsBuyout
	}
	return OpRedeemTokenBuyout
}

// VaultBuyoutParams 买断/直转指令的输入。
// Destination 非空时走直转变体（destination 取代两个 treasury）；
// PayerTokenAccount 仅在非原生支付时提供；CreatorAccounts 按版税名单逐个追加到表尾。
// CentralFeeAdmin 为调用方从 OperatingConfig 解析出的收费地址，显式传入。
// BurnAuthority 为零值时按 vault 派生 transfer authority PDA 填入。
type VaultBuyoutParams struct {
	Kind                    RedeemKind
	FractionManager         types.Pubkey
	SafetyDepositTokenStore types.Pubkey
	SafetyDeposit           types.Pubkey
	RedeemTreasury          types.Pubkey
	FractionTreasury        types.Pubkey
	Destination             *types.Pubkey
	Vault                   types.Pubkey
	MasterMetadata          types.Pubkey
	FractionMint            types.Pubkey
	PriceMint               types.Pubkey
	ExternalPriceAccount    types.Pubkey
	OutstandingShareAccount types.Pubkey
	BurnAuthority           types.Pubkey
	VaultAuthority          types.Pubkey
	CentralFeeAdmin         types.Pubkey
	Payer                   types.Pubkey
	PayerTokenAccount       *types.Pubkey
	CreatorAccounts         []types.Pubkey
}

func (b *Builder) VaultBuyout(p VaultBuyoutParams, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	configKey, err := b.Deriver.FractionSafetyDepositConfigKey(p.FractionManager, p.SafetyDeposit)
	if err != nil {
		return err
	}

	burnAuthority := p.BurnAuthority
	if burnAuthority.IsZero() {
		burnAuthority, err = pda.VaultTransferAuthority(consts.TokenVaultProgram, p.Vault)
		if err != nil {
			return err
		}
	}

	data, err := model.Encode(redeemBuyoutArgs{Instruction: p.Kind.opcode()})
	if err != nil {
		return err
	}

	layout := VaultBuyoutLayout
	head := []types.Pubkey{p.FractionManager, p.SafetyDepositTokenStore, p.SafetyDeposit, p.RedeemTreasury, p.FractionTreasury}
	if p.Destination != nil {
		layout = FullRightsTokenTransferLayout
		head = []types.Pubkey{p.FractionManager, p.SafetyDepositTokenStore, p.SafetyDeposit, *p.Destination}
	}

	addrs := append(head,
		p.Vault,
		p.MasterMetadata,
		consts.AssociatedTokenProgram,
		p.FractionMint,
		p.PriceMint,
		p.ExternalPriceAccount,
		p.OutstandingShareAccount,
		consts.TokenProgram,
		consts.TokenVaultProgram,
		consts.TokenMetadataProgram,
		burnAuthority,
		b.Deriver.FrackHouse,
		p.VaultAuthority,
		configKey,
		p.CentralFeeAdmin,
		consts.SystemProgram,
		consts.RentSysvar,
		p.Payer,
	)

	ix, err := compose(b.Deriver.Program, layout, addrs, data)
	if err != nil {
		return err
	}

	if p.PayerTokenAccount != nil {
		appendMeta(&ix, *p.PayerTokenAccount, false, true)
	}
	for _, creator := range p.CreatorAccounts {
		appendMeta(&ix, creator, false, false)
	}

	*out = append(*out, ix)
	return nil
}

// SetFrackHouse 指令 8：管理员创建或更新 frack house 注册表
func (b *Builder) SetFrackHouse(admin, payer, operatingConfig types.Pubkey, isPublic bool, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	data, err := model.Encode(setFrackHouseArgs{Instruction: OpSetFrackHouse, Public: isPublic})
	if err != nil {
		return err
	}

	ix, err := compose(b.Deriver.Program, SetFrackHouseLayout, []types.Pubkey{
		b.Deriver.FrackHouse,
		operatingConfig,
		admin,
		payer,
		consts.TokenProgram,
		consts.TokenVaultProgram,
		consts.TokenMetadataProgram,
		consts.SystemProgram,
		consts.RentSysvar,
	}, data)
	if err != nil {
		return err
	}
	*out = append(*out, ix)
	return nil
}

// SetFrackHouseIndex 指令 21：把 vaultCache 写入第 page 页的 offset 位。
// above/below 为插入位置的前后邻居，仅在存在时追加（above 在前）。
func (b *Builder) SetFrackHouseIndex(indexer, vaultCache, payer types.Pubkey, page, offset uint64, above, below *types.Pubkey, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	data, err := model.Encode(setFrackHouseIndexArgs{
		Instruction: OpSetFrackHouseIndex,
		Page:        page,
		Offset:      offset,
	})
	if err != nil {
		return err
	}

	ix, err := compose(b.Deriver.Program, SetFrackHouseIndexLayout, []types.Pubkey{
		indexer,
		payer,
		vaultCache,
		b.Deriver.FrackHouse,
		consts.SystemProgram,
		consts.RentSysvar,
	}, data)
	if err != nil {
		return err
	}

	if above != nil {
		appendMeta(&ix, *above, false, false)
	}
	if below != nil {
		appendMeta(&ix, *below, false, false)
	}

	*out = append(*out, ix)
	return nil
}

// SetVaultCache 指令 22：为 vault 写 cache 账户（每个 safety deposit box 一条）
func (b *Builder) SetVaultCache(vaultCache, payer, vault, safetyDepositBox, fractionManager types.Pubkey, out *[]sdktypes.Instruction) error {
	if err := b.requireFrackHouse(); err != nil {
		return err
	}

	data, err := model.Encode(setVaultCacheArgs{Instruction: OpSetVaultCache})
	if err != nil {
		return err
	}

	ix, err := compose(b.Deriver.Program, SetVaultCacheLayout, []types.Pubkey{
		vaultCache,
		payer,
		vault,
		safetyDepositBox,
		fractionManager,
		b.Deriver.FrackHouse,
		consts.SystemProgram,
		consts.RentSysvar,
		consts.ClockSysvar,
	}, data)
	if err != nil {
		return err
	}
	*out = append(*out, ix)
	return nil
}
