package indexer

import (
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"

	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/instruction"
	"frantik-client-sol/internal/model"
	"frantik-client-sol/internal/pda"
	"frantik-client-sol/internal/types"
)

// Page 一页已加载的链上索引账户
type Page struct {
	Pubkey types.Pubkey
	Record model.FrackHouseIndexer
}

// Plan 一次索引操作产出的指令批次。
// InstructionSets 与 SignerSets 按下标一一对应，交给编排器顺序提交。
type Plan struct {
	InstructionSets [][]sdktypes.Instruction
	SignerSets      [][]types.Signer
}

func (p *Plan) append(instrs []sdktypes.Instruction, signers []types.Signer) {
	p.InstructionSets = append(p.InstructionSets, instrs)
	p.SignerSets = append(p.SignerSets, signers)
}

// Manager 负责把新 vault 写进分页索引：
// 新条目固定插到第 0 页第 0 位，被挤出页尾的条目逐页向后传播。
type Manager struct {
	builder *instruction.Builder
}

func NewManager(b *instruction.Builder) *Manager {
	return &Manager{builder: b}
}

// CacheVaultParams 一次 CacheVaultInIndexer 的输入
type CacheVaultParams struct {
	Vault           types.Pubkey
	FractionManager types.Pubkey
	TokenMints      []types.Pubkey // 需要写进 vault cache 的 metadata mint 列表
	Payer           types.Pubkey
	Pages           []Page // 既有索引页，必须按页号从 0 连续升序
	SkipCache       bool   // vault cache 已存在时跳过写缓存批次
}

// CacheVaultInIndexer 生成把 vault 写进索引所需的全部指令批次：
//  1. 可选的 vault cache 写入批次（每批最多 CacheBatchSize 条）
//  2. 头部插入：新 cache 写到第 0 页第 0 位，above 指向原第 0 页头部
//  3. 级联传播：每个满页的尾部条目挤到下一页头部，直到遇到未满页或新建一页
func (m *Manager) CacheVaultInIndexer(p CacheVaultParams) (Plan, error) {
	if err := validatePages(p.Pages); err != nil {
		return Plan{}, err
	}

	deriver := m.builder.Deriver
	vaultCache, err := deriver.VaultCacheKey(p.Vault)
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	if !p.SkipCache {
		if err := m.appendCacheSets(&plan, vaultCache, p); err != nil {
			return Plan{}, err
		}
	}
	if err := m.appendHeadInsert(&plan, vaultCache, p); err != nil {
		return Plan{}, err
	}
	if err := m.appendPropagation(&plan, p); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// appendCacheSets 为每个 token mint 生成一条 SetVaultCache，按批打包
func (m *Manager) appendCacheSets(plan *Plan, vaultCache types.Pubkey, p CacheVaultParams) error {
	var current []sdktypes.Instruction
	for _, mint := range p.TokenMints {
		safetyDeposit, err := pda.SafetyDepositBoxKey(consts.TokenVaultProgram, p.Vault, mint)
		if err != nil {
			return err
		}
		if err := m.builder.SetVaultCache(vaultCache, p.Payer, p.Vault, safetyDeposit, p.FractionManager, &current); err != nil {
			return err
		}
		if len(current) >= consts.CacheBatchSize {
			plan.append(current, nil)
			current = nil
		}
	}
	if len(current) > 0 {
		plan.append(current, nil)
	}
	return nil
}

// appendHeadInsert 把新 cache 插到第 0 页第 0 位
func (m *Manager) appendHeadInsert(plan *Plan, vaultCache types.Pubkey, p CacheVaultParams) error {
	pageZero, err := m.builder.Deriver.FrackHouseIndexerKey(0)
	if err != nil {
		return err
	}
	var above *types.Pubkey
	if len(p.Pages) > 0 && len(p.Pages[0].Record.VaultCaches) > 0 {
		head := p.Pages[0].Record.VaultCaches[0]
		above = &head
	}
	var instrs []sdktypes.Instruction
	if err := m.builder.SetFrackHouseIndex(pageZero, vaultCache, p.Payer, 0, 0, above, nil, &instrs); err != nil {
		return err
	}
	plan.append(instrs, nil)
	return nil
}

// appendPropagation 逐页传播被挤出的尾部条目。
// 级联在第一个未满页停止；最后一页也满时新建一页承接。
func (m *Manager) appendPropagation(plan *Plan, p CacheVaultParams) error {
	var current []sdktypes.Instruction

	for idx := 0; idx < len(p.Pages) && len(p.Pages[idx].Record.VaultCaches) == consts.MaxIndexedElements; idx++ {
		page := p.Pages[idx]
		evicted := page.Record.VaultCaches[len(page.Record.VaultCaches)-1]

		var target types.Pubkey
		var above *types.Pubkey
		if idx+1 < len(p.Pages) {
			next := p.Pages[idx+1]
			target = next.Pubkey
			if len(next.Record.VaultCaches) > 0 {
				head := next.Record.VaultCaches[0]
				above = &head
			}
		} else {
			derived, err := m.builder.Deriver.FrackHouseIndexerKey(page.Record.Page + 1)
			if err != nil {
				return err
			}
			target = derived
		}

		if err := m.builder.SetFrackHouseIndex(target, evicted, p.Payer, page.Record.Page+1, 0, above, nil, &current); err != nil {
			return err
		}
		if len(current) >= consts.IndexBatchSize {
			plan.append(current, nil)
			current = nil
		}
	}

	if len(current) > 0 {
		plan.append(current, nil)
	}
	return nil
}

func validatePages(pages []Page) error {
	for i, pg := range pages {
		if pg.Record.Page != uint64(i) {
			return errs.Precondition(fmt.Sprintf("indexer pages not contiguous: slot %d holds page %d", i, pg.Record.Page))
		}
	}
	return nil
}
