package indexer

import (
	"encoding/binary"
	"testing"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/instruction"
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

func testManager() *Manager {
	return NewManager(instruction.NewBuilder(&pda.Deriver{
		Program:    consts.FrantikProgram,
		FrackHouse: pk(0x10),
	}))
}

// fullPage 构造一个装满的索引页，条目为 base, base+1, ...
func fullPage(t *testing.T, m *Manager, page uint64, base byte) Page {
	t.Helper()
	key, err := m.builder.Deriver.FrackHouseIndexerKey(page)
	require.NoError(t, err)
	caches := make([]types.Pubkey, consts.MaxIndexedElements)
	for i := range caches {
		caches[i] = pk(base + byte(i))
	}
	return Page{Pubkey: key, Record: model.FrackHouseIndexer{
		Key:         model.KeyFrackHouseIndexerV1,
		FrackHouse:  pk(0x10),
		Page:        page,
		VaultCaches: caches,
	}}
}

func partialPage(t *testing.T, m *Manager, page uint64, base byte, n int) Page {
	t.Helper()
	full := fullPage(t, m, page, base)
	full.Record.VaultCaches = full.Record.VaultCaches[:n]
	return full
}

// indexArgs 解出 SetFrackHouseIndex 指令的 page/offset
func indexArgs(t *testing.T, ix sdktypes.Instruction) (page, offset uint64) {
	t.Helper()
	require.Len(t, ix.Data, 17)
	return binary.LittleEndian.Uint64(ix.Data[1:9]), binary.LittleEndian.Uint64(ix.Data[9:17])
}

func cacheAt(ix sdktypes.Instruction, i int) types.Pubkey {
	return types.FromCommon(ix.Accounts[i].PubKey)
}

// 空索引：只有一条头部插入指令，page 0 offset 0，无邻居账户
func TestCacheVault_EmptyIndex(t *testing.T) {
	m := testManager()

	plan, err := m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		Payer:           pk(3),
		SkipCache:       true,
	})
	require.NoError(t, err)
	require.Len(t, plan.InstructionSets, 1)
	require.Len(t, plan.InstructionSets[0], 1)

	ix := plan.InstructionSets[0][0]
	page, offset := indexArgs(t, ix)
	assert.Equal(t, uint64(0), page)
	assert.Equal(t, uint64(0), offset)
	assert.Len(t, ix.Accounts, 6) // 无 above 邻居
}

// 写缓存批次：每 10 个 mint 一批，剩余归入收尾批
func TestCacheVault_CacheBatching(t *testing.T) {
	m := testManager()

	mints := make([]types.Pubkey, 12)
	for i := range mints {
		mints[i] = pk(0x80 + byte(i))
	}

	plan, err := m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		TokenMints:      mints,
		Payer:           pk(3),
	})
	require.NoError(t, err)

	// 10 + 2 两个缓存批次，然后是头部插入批次
	require.Len(t, plan.InstructionSets, 3)
	assert.Len(t, plan.InstructionSets[0], consts.CacheBatchSize)
	assert.Len(t, plan.InstructionSets[1], 2)
	assert.Len(t, plan.InstructionSets[2], 1)
	assert.Len(t, plan.SignerSets, 3)

	// 每条缓存指令的 vaultCache 槽位都是同一个派生地址
	vaultCache, err := m.builder.Deriver.VaultCacheKey(pk(1))
	require.NoError(t, err)
	for _, ix := range plan.InstructionSets[0] {
		assert.Equal(t, vaultCache, cacheAt(ix, 0))
	}

	// SkipCache 时只剩头部插入
	plan, err = m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		TokenMints:      mints,
		Payer:           pk(3),
		SkipCache:       true,
	})
	require.NoError(t, err)
	assert.Len(t, plan.InstructionSets, 1)
}

// 两级级联：第 0 页已满，尾部条目挤到新建的第 1 页头部
func TestCacheVault_TwoLevelCascade(t *testing.T) {
	m := testManager()
	page0 := fullPage(t, m, 0, 0x20)

	plan, err := m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		Payer:           pk(3),
		Pages:           []Page{page0},
		SkipCache:       true,
	})
	require.NoError(t, err)
	require.Len(t, plan.InstructionSets, 2)

	// 头部插入：above 指向原第 0 页头部
	head := plan.InstructionSets[0][0]
	require.Len(t, head.Accounts, 7)
	assert.Equal(t, page0.Record.VaultCaches[0], cacheAt(head, 6))

	// 传播：被挤出的尾部写到第 1 页第 0 位，目标页尚不存在所以无 above
	require.Len(t, plan.InstructionSets[1], 1)
	prop := plan.InstructionSets[1][0]
	page, offset := indexArgs(t, prop)
	assert.Equal(t, uint64(1), page)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, page0.Record.VaultCaches[consts.MaxIndexedElements-1], cacheAt(prop, 2))

	newPageKey, err := m.builder.Deriver.FrackHouseIndexerKey(1)
	require.NoError(t, err)
	assert.Equal(t, newPageKey, cacheAt(prop, 0))
	assert.Len(t, prop.Accounts, 6)
}

// 三级级联：第 0、1 页都满，逐页下传，在未满的第 2 页停止
func TestCacheVault_ThreeLevelCascade(t *testing.T) {
	m := testManager()
	page0 := fullPage(t, m, 0, 0x20)
	page1 := fullPage(t, m, 1, 0x40)
	page2 := partialPage(t, m, 2, 0x60, 3)

	plan, err := m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		Payer:           pk(3),
		Pages:           []Page{page0, page1, page2},
		SkipCache:       true,
	})
	require.NoError(t, err)
	require.Len(t, plan.InstructionSets, 2)

	props := plan.InstructionSets[1]
	require.Len(t, props, 2)

	// 第 0 页尾部 -> 第 1 页头部，above 是第 1 页现任头部
	page, _ := indexArgs(t, props[0])
	assert.Equal(t, uint64(1), page)
	assert.Equal(t, page0.Record.VaultCaches[9], cacheAt(props[0], 2))
	assert.Equal(t, page1.Pubkey, cacheAt(props[0], 0))
	require.Len(t, props[0].Accounts, 7)
	assert.Equal(t, page1.Record.VaultCaches[0], cacheAt(props[0], 6))

	// 第 1 页尾部 -> 第 2 页头部，第 2 页未满，级联到此为止
	page, _ = indexArgs(t, props[1])
	assert.Equal(t, uint64(2), page)
	assert.Equal(t, page1.Record.VaultCaches[9], cacheAt(props[1], 2))
	assert.Equal(t, page2.Pubkey, cacheAt(props[1], 0))
	assert.Equal(t, page2.Record.VaultCaches[0], cacheAt(props[1], 6))
}

// 页号不连续的输入直接拒绝
func TestCacheVault_RejectsGappedPages(t *testing.T) {
	m := testManager()
	page1 := fullPage(t, m, 1, 0x20)

	_, err := m.CacheVaultInIndexer(CacheVaultParams{
		Vault:           pk(1),
		FractionManager: pk(2),
		Payer:           pk(3),
		Pages:           []Page{page1},
	})
	assert.Error(t, err)
}
