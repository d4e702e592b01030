package instruction

import "frantik-client-sol/internal/model"

// 指令操作码。编号与已部署程序一致，属于线上契约。
const (
	OpRedeemTokenBuyout           uint8 = 2
	OpRedeemFullRightsBuyout      uint8 = 3
	OpSetFrackHouse               uint8 = 8
	OpDecommissionFractionManager uint8 = 13
	OpInitFractionManager         uint8 = 17
	OpValidateSafetyDepositBox    uint8 = 18
	OpSetFrackHouseIndex          uint8 = 21
	OpSetVaultCache               uint8 = 22
)

// 指令载荷：首字节操作码，其后按 borsh 声明序编码

type initFractionManagerArgs struct {
	Instruction uint8
}

type validateSafetyDepositBoxArgs struct {
	Instruction         uint8
	SafetyDepositConfig model.FractionSafetyDepositConfig
}

type redeemBuyoutArgs struct {
	Instruction uint8
}

type setFrackHouseArgs struct {
	Instruction uint8
	Public      bool
}

type setFrackHouseIndexArgs struct {
	Instruction uint8
	Page        uint64
	Offset      uint64
}

type setVaultCacheArgs struct {
	Instruction uint8
}
