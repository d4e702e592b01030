package consts

import "frantik-client-sol/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	SystemProgramStr          = "11111111111111111111111111111111"
	TokenProgramStr           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	AssociatedTokenProgramStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	TokenMetadataProgramStr   = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
	TokenVaultProgramStr      = "vau1zxA2LbssAUEF7Gpw91zMM1LvXrvpzJtmZ58rPsn"
	FrantikProgramStr         = "GF7HZFq8MaosZ4cQH6jyNUSx4qSCZoebbuwQxdETLieg"

	RentSysvarStr  = "SysvarRent111111111111111111111111111111111"
	ClockSysvarStr = "SysvarC1ock11111111111111111111111111111111"
)

var (
	SystemProgram          = types.PubkeyFromBase58(SystemProgramStr)
	TokenProgram           = types.PubkeyFromBase58(TokenProgramStr)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)
	TokenMetadataProgram   = types.PubkeyFromBase58(TokenMetadataProgramStr)
	TokenVaultProgram      = types.PubkeyFromBase58(TokenVaultProgramStr)
	FrantikProgram         = types.PubkeyFromBase58(FrantikProgramStr)

	RentSysvar  = types.PubkeyFromBase58(RentSysvarStr)
	ClockSysvar = types.PubkeyFromBase58(ClockSysvarStr)
)
