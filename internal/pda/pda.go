package pda

import (
	"fmt"
	"strconv"

	"github.com/blocto/solana-go-sdk/common"

	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/types"
)

// Derive 对给定 seed 序列做 PDA 派生。纯函数：相同输入必然得到相同地址，
// bump 机制保证结果落在 ed25519 曲线外，不会与普通密钥地址冲突。
func Derive(seeds [][]byte, programID types.Pubkey) (types.Pubkey, uint8, error) {
	addr, bump, err := common.FindProgramAddress(seeds, programID.Common())
	if err != nil {
		return types.Pubkey{}, 0, fmt.Errorf("find program address: %w", err)
	}
	return types.FromCommon(addr), bump, nil
}

// Deriver 持有一次会话内不变的 frantik 程序地址与 frack house 地址。
// FrackHouse 为零值表示部署尚未配置，需要它的派生会失败。
type Deriver struct {
	Program    types.Pubkey
	FrackHouse types.Pubkey
}

func (d *Deriver) requireFrackHouse() error {
	if d.FrackHouse.IsZero() {
		return errs.Precondition("frack house not initialized")
	}
	return nil
}

// FrackHouseForOwner 由部署 owner 地址推导 frack house 注册表地址
func FrackHouseForOwner(program, owner types.Pubkey) (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		program[:],
		owner[:],
	}, program)
	return addr, err
}

// FractionManagerKey 每个 vault 对应唯一的 manager 地址
func (d *Deriver) FractionManagerKey(vault types.Pubkey) (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		vault[:],
	}, d.Program)
	return addr, err
}

// OriginalAuthorityLookup 记录 metadata 原始 authority 的查找账户
func (d *Deriver) OriginalAuthorityLookup(vault, metadata types.Pubkey) (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		vault[:],
		metadata[:],
	}, d.Program)
	return addr, err
}

// FractionSafetyDepositConfigKey 每个入库资产的配置账户
func (d *Deriver) FractionSafetyDepositConfigKey(fractionManager, safetyDeposit types.Pubkey) (types.Pubkey, error) {
	if err := d.requireFrackHouse(); err != nil {
		return types.Pubkey{}, err
	}
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		d.Program[:],
		fractionManager[:],
		safetyDeposit[:],
	}, d.Program)
	return addr, err
}

// WhitelistedFrackerKey 白名单条目地址，按 frack house 划分命名空间
func (d *Deriver) WhitelistedFrackerKey(fracker types.Pubkey) (types.Pubkey, error) {
	if err := d.requireFrackHouse(); err != nil {
		return types.Pubkey{}, err
	}
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		d.Program[:],
		d.FrackHouse[:],
		fracker[:],
	}, d.Program)
	return addr, err
}

// FrackHouseIndexerKey 第 page 页索引账户。页号以十进制字符串入 seed。
func (d *Deriver) FrackHouseIndexerKey(page uint64) (types.Pubkey, error) {
	if err := d.requireFrackHouse(); err != nil {
		return types.Pubkey{}, err
	}
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		d.Program[:],
		d.FrackHouse[:],
		[]byte(consts.IndexSeed),
		[]byte(strconv.FormatUint(page, 10)),
	}, d.Program)
	return addr, err
}

// VaultCacheKey 指定 vault 的缓存账户
func (d *Deriver) VaultCacheKey(vault types.Pubkey) (types.Pubkey, error) {
	if err := d.requireFrackHouse(); err != nil {
		return types.Pubkey{}, err
	}
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		d.Program[:],
		d.FrackHouse[:],
		vault[:],
		[]byte(consts.CacheSeed),
	}, d.Program)
	return addr, err
}

// OperatingConfigKey 运营配置单例地址
func (d *Deriver) OperatingConfigKey() (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.FrantikPrefix),
		d.Program[:],
		[]byte(consts.ConfigSeed),
	}, d.Program)
	return addr, err
}

// SafetyDepositBoxKey token vault 程序名下存放某个 mint 的保险箱账户
func SafetyDepositBoxKey(vaultProgram, vault, tokenMint types.Pubkey) (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.VaultPrefix),
		vault[:],
		tokenMint[:],
	}, vaultProgram)
	return addr, err
}

// VaultTransferAuthority token vault 程序名下的转移授权 PDA
func VaultTransferAuthority(vaultProgram, vault types.Pubkey) (types.Pubkey, error) {
	addr, _, err := Derive([][]byte{
		[]byte(consts.VaultPrefix),
		vaultProgram[:],
		vault[:],
	}, vaultProgram)
	return addr, err
}
