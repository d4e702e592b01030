package model

import "frantik-client-sol/internal/types"

// 账户记录定义。字段顺序即线上字节布局（borsh 按声明序编码），
// 任何调整字段顺序或类型的改动都是破坏性协议变更。

// FrackHouse 每个部署唯一的注册表账户，记录三个协作程序。
// 创建后 authority 字段不可变。
type FrackHouse struct {
	Key                  Key
	Public               bool
	TokenVaultProgram    types.Pubkey
	TokenMetadataProgram types.Pubkey
	TokenProgram         types.Pubkey
}

// OperatingConfig 运营配置单例：中心手续费收款人与两档 basis-point 费率。
// 仅 admin 指令路径可写，所有买断指令读取。
type OperatingConfig struct {
	Key                   Key
	CentralAdmin          types.Pubkey
	CentralFeeBasisPoints uint16
	SellerFeeBasisPoints  uint16
}

// FractionManagerState 嵌套子记录，原地编码（无长度前缀）
type FractionManagerState struct {
	Status                     FractionManagerStatus
	SafetyConfigItemsValidated uint64
}

// FractionManager 每个碎片化 vault 一个
type FractionManager struct {
	Key        Key
	FrackHouse types.Pubkey
	Authority  types.Pubkey
	Vault      types.Pubkey
	State      FractionManagerState
}

// FractionSafetyDepositConfig 每个入库资产一条，Order 为 0 起的入库顺序，创建后不可变
type FractionSafetyDepositConfig struct {
	Key               Key
	FractionManager   types.Pubkey
	Order             uint64
	WinningConfigType WinningConfigType
}

// WhitelistedFracker 白名单条目。Name/Image/Twitter 来自链下 names 表，
// 仅做展示增强，不参与序列化。
type WhitelistedFracker struct {
	Key       Key
	Address   types.Pubkey
	Activated bool

	Name    string `borsh_skip:"true"`
	Image   string `borsh_skip:"true"`
	Twitter string `borsh_skip:"true"`
}

// VaultCache 每个 vault 的反规范化快照，索引页条目指向的载荷
type VaultCache struct {
	Key             Key
	FrackHouse      types.Pubkey
	Timestamp       uint64
	Metadata        []types.Pubkey
	Vault           types.Pubkey
	FractionManager types.Pubkey
}

// FrackHouseIndexer 固定容量索引页，按页号前向成链。
// VaultCaches 长度达到 consts.MaxIndexedElements 即为满页。
type FrackHouseIndexer struct {
	Key         Key
	FrackHouse  types.Pubkey
	Page        uint64
	VaultCaches []types.Pubkey
}
