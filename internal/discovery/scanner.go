package discovery

import (
	"context"

	"frantik-client-sol/internal/indexer"
	"frantik-client-sol/internal/ledger"
	"frantik-client-sol/internal/model"
	"frantik-client-sol/internal/names"
	"frantik-client-sol/internal/pda"
	"frantik-client-sol/internal/types"
	"frantik-client-sol/pkg/logger"
)

// 单次 getMultipleAccounts 的地址上限
const fetchChunkSize = 100

// ParsedManager 一个已解码的 fraction manager 账户
type ParsedManager struct {
	Pubkey types.Pubkey
	Record model.FractionManager
}

// Meta 一个 frack house 部署的聚合视图
type Meta struct {
	FrackHouse      *model.FrackHouse
	OperatingConfig *model.OperatingConfig
	Pages           []indexer.Page
	VaultCaches     map[types.Pubkey]model.VaultCache
	ManagersByVault map[types.Pubkey]ParsedManager
}

// Scanner 从派生地址出发拉取并解码整个部署的账户状态
type Scanner struct {
	ledger  *ledger.Client
	deriver *pda.Deriver
}

func NewScanner(lc *ledger.Client, d *pda.Deriver) *Scanner {
	return &Scanner{ledger: lc, deriver: d}
}

// Scan 完整扫描：frack house 本体、运营配置、全部索引页、
// 页内引用的 vault cache 以及 cache 指向的 fraction manager。
// 单个账户解码失败只记日志跳过，不中断扫描。
func (s *Scanner) Scan(ctx context.Context) (*Meta, error) {
	meta := &Meta{
		VaultCaches:     make(map[types.Pubkey]model.VaultCache),
		ManagersByVault: make(map[types.Pubkey]ParsedManager),
	}

	houseAcc, err := s.ledger.GetAccount(ctx, s.deriver.FrackHouse)
	if err != nil {
		return nil, err
	}
	if houseAcc.Found {
		if house, err := model.DecodeFrackHouse(houseAcc.Data); err != nil {
			logger.Warnf("[Discovery] frack house %s decode failed: %v", s.deriver.FrackHouse, err)
		} else {
			meta.FrackHouse = house
		}
	}

	configKey, err := s.deriver.OperatingConfigKey()
	if err != nil {
		return nil, err
	}
	configAcc, err := s.ledger.GetAccount(ctx, configKey)
	if err != nil {
		return nil, err
	}
	if configAcc.Found {
		if cfg, err := model.DecodeOperatingConfig(configAcc.Data); err != nil {
			logger.Warnf("[Discovery] operating config %s decode failed: %v", configKey, err)
		} else {
			meta.OperatingConfig = cfg
		}
	}

	pages, err := s.LoadPages(ctx)
	if err != nil {
		return nil, err
	}
	meta.Pages = pages

	if err := s.loadCachesAndManagers(ctx, meta); err != nil {
		return nil, err
	}

	logger.Infof("[Discovery] scan done: pages=%d, caches=%d, managers=%d",
		len(meta.Pages), len(meta.VaultCaches), len(meta.ManagersByVault))
	return meta, nil
}

// LoadPages 从第 0 页开始顺序拉取索引页，遇到不存在的页号停止
func (s *Scanner) LoadPages(ctx context.Context) ([]indexer.Page, error) {
	var pages []indexer.Page
	for page := uint64(0); ; page++ {
		key, err := s.deriver.FrackHouseIndexerKey(page)
		if err != nil {
			return nil, err
		}
		acc, err := s.ledger.GetAccount(ctx, key)
		if err != nil {
			return nil, err
		}
		if !acc.Found {
			return pages, nil
		}
		record, err := model.DecodeFrackHouseIndexer(acc.Data)
		if err != nil {
			logger.Warnf("[Discovery] indexer page %d (%s) decode failed: %v", page, key, err)
			return pages, nil
		}
		pages = append(pages, indexer.Page{Pubkey: key, Record: *record})
	}
}

// loadCachesAndManagers 批量拉取所有页引用的 cache，再拉取 cache 指向的 manager
func (s *Scanner) loadCachesAndManagers(ctx context.Context, meta *Meta) error {
	var cacheAddrs []types.Pubkey
	seen := make(map[types.Pubkey]struct{})
	for _, pg := range meta.Pages {
		for _, c := range pg.Record.VaultCaches {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cacheAddrs = append(cacheAddrs, c)
		}
	}

	var managerAddrs []types.Pubkey
	for _, accs := range chunk(cacheAddrs, fetchChunkSize) {
		result, err := s.ledger.GetAccounts(ctx, accs)
		if err != nil {
			return err
		}
		for _, acc := range result {
			if !acc.Found {
				logger.Warnf("[Discovery] vault cache %s missing", acc.Pubkey)
				continue
			}
			record, key, ok := model.Classify(acc.Data)
			if !ok || key != model.KeyVaultCacheV1 {
				logger.Warnf("[Discovery] account %s is not a vault cache (key=%d)", acc.Pubkey, key)
				continue
			}
			cache := record.(*model.VaultCache)
			meta.VaultCaches[acc.Pubkey] = *cache
			managerAddrs = append(managerAddrs, cache.FractionManager)
		}
	}

	for _, accs := range chunk(managerAddrs, fetchChunkSize) {
		result, err := s.ledger.GetAccounts(ctx, accs)
		if err != nil {
			return err
		}
		for _, acc := range result {
			if !acc.Found {
				continue
			}
			manager, err := model.DecodeFractionManager(acc.Data)
			if err != nil {
				logger.Warnf("[Discovery] fraction manager %s decode failed: %v", acc.Pubkey, err)
				continue
			}
			meta.ManagersByVault[manager.Vault] = ParsedManager{Pubkey: acc.Pubkey, Record: *manager}
		}
	}
	return nil
}

// WhitelistedFracker 拉取单个白名单条目并用内置名录补全展示信息
func (s *Scanner) WhitelistedFracker(ctx context.Context, fracker types.Pubkey) (*model.WhitelistedFracker, error) {
	key, err := s.deriver.WhitelistedFrackerKey(fracker)
	if err != nil {
		return nil, err
	}
	acc, err := s.ledger.GetAccount(ctx, key)
	if err != nil {
		return nil, err
	}
	if !acc.Found {
		return nil, nil
	}
	record, err := model.DecodeWhitelistedFracker(acc.Data)
	if err != nil {
		return nil, err
	}
	if info, ok := names.Lookup(record.Address.String()); ok {
		record.Name = info.Name
		record.Image = info.Image
		record.Twitter = info.Twitter
	}
	return record, nil
}

func chunk(addrs []types.Pubkey, size int) [][]types.Pubkey {
	var out [][]types.Pubkey
	for len(addrs) > size {
		out = append(out, addrs[:size])
		addrs = addrs[size:]
	}
	if len(addrs) > 0 {
		out = append(out, addrs)
	}
	return out
}
