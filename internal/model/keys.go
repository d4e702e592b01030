package model

// Key 是每条 frantik 账户数据的首字节判别符。
// 编号属于已部署程序的线上契约，禁止改动。
type Key uint8

const (
	KeyUninitialized                 Key = 0
	KeyFrackHouseIndexerV1           Key = 1
	KeyVaultCacheV1                  Key = 2
	KeyFractionManagerV1             Key = 3
	KeyFractionSafetyDepositConfigV1 Key = 4
	KeyFrackHouseV1                  Key = 5
	KeyWhitelistedFrackerV1          Key = 6
	KeyOperatingConfigV1             Key = 7
)

func (k Key) String() string {
	switch k {
	case KeyUninitialized:
		return "Uninitialized"
	case KeyFrackHouseIndexerV1:
		return "FrackHouseIndexerV1"
	case KeyVaultCacheV1:
		return "VaultCacheV1"
	case KeyFractionManagerV1:
		return "FractionManagerV1"
	case KeyFractionSafetyDepositConfigV1:
		return "FractionSafetyDepositConfigV1"
	case KeyFrackHouseV1:
		return "FrackHouseV1"
	case KeyWhitelistedFrackerV1:
		return "WhitelistedFrackerV1"
	case KeyOperatingConfigV1:
		return "OperatingConfigV1"
	default:
		return "Unknown"
	}
}

// FractionManagerStatus 生命周期状态，只允许单调前进
type FractionManagerStatus uint8

const (
	StatusInitialized FractionManagerStatus = iota
	StatusValidated
	StatusRunning
	StatusDisbursing
	StatusFinished
)

// CanAdvanceTo 校验状态迁移是否是合法的前向迁移
func (s FractionManagerStatus) CanAdvanceTo(next FractionManagerStatus) bool {
	return next > s && next <= StatusFinished
}

func (s FractionManagerStatus) String() string {
	switch s {
	case StatusInitialized:
		return "Initialized"
	case StatusValidated:
		return "Validated"
	case StatusRunning:
		return "Running"
	case StatusDisbursing:
		return "Disbursing"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// WinningConfigType 决定买断时转移的权利范围
type WinningConfigType uint8

const (
	// TokenOnlyBuyout 仅转移 token 本体，metadata 所有权保留在原作者手中
	TokenOnlyBuyout WinningConfigType = 0
	// FullRightsBuyout token 与 metadata 所有权一并转移
	FullRightsBuyout WinningConfigType = 1
)
