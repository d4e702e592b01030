package consts

const (
	// FrantikPrefix 所有 frantik PDA 的第一个 seed
	FrantikPrefix = "frantik"
	// VaultPrefix token vault 程序的 PDA seed（transfer authority 派生用）
	VaultPrefix = "vault"

	// IndexSeed / CacheSeed / ConfigSeed 区分索引页、vault cache 与运营配置的命名空间
	IndexSeed  = "index"
	CacheSeed  = "cache"
	ConfigSeed = "config"

	// MaxIndexedElements 单个索引页能容纳的 vault cache 数量，超出即触发向下一页迁移
	MaxIndexedElements = 10

	// IndexBatchSize 索引迁移指令的打包粒度（每笔交易的指令数上限）
	IndexBatchSize = 10
	// CacheBatchSize vault cache 写入指令的打包粒度
	CacheBatchSize = 10
)
