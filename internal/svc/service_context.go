package svc

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"frantik-client-sol/internal/config"
	"frantik-client-sol/internal/consts"
	"frantik-client-sol/internal/discovery"
	"frantik-client-sol/internal/indexer"
	"frantik-client-sol/internal/instruction"
	"frantik-client-sol/internal/ledger"
	"frantik-client-sol/internal/orchestrator"
	"frantik-client-sol/internal/pda"
	"frantik-client-sol/internal/progress"
	"frantik-client-sol/internal/types"
)

// ServiceContext 持有一次会话内全部已装配的组件。
// 配置在构造时解析完毕，之后不再变更。
type ServiceContext struct {
	Config       *config.Config
	Deriver      *pda.Deriver
	Builder      *instruction.Builder
	Ledger       *ledger.Client
	Indexer      *indexer.Manager
	Scanner      *discovery.Scanner
	Orchestrator *orchestrator.Orchestrator
}

func NewServiceContext(cfg *config.Config) (*ServiceContext, error) {
	program := consts.FrantikProgram
	if cfg.FrantikConf.ProgramID != "" {
		parsed, err := types.TryPubkeyFromBase58(cfg.FrantikConf.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("parse program id: %w", err)
		}
		program = parsed
	}

	frackHouse, err := resolveFrackHouse(program, cfg.FrantikConf)
	if err != nil {
		return nil, err
	}

	deriver := &pda.Deriver{Program: program, FrackHouse: frackHouse}
	builder := instruction.NewBuilder(deriver)
	ledgerClient := ledger.New(cfg.RpcConf.Endpoint, ledger.SubmitMode(cfg.RpcConf.Mode))

	orch := orchestrator.New(ledgerClient)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		orch = orch.WithProgress(progress.NewRedisStore(rdb))
	}

	return &ServiceContext{
		Config:       cfg,
		Deriver:      deriver,
		Builder:      builder,
		Ledger:       ledgerClient,
		Indexer:      indexer.NewManager(builder),
		Scanner:      discovery.NewScanner(ledgerClient, deriver),
		Orchestrator: orch,
	}, nil
}

// resolveFrackHouse 解析注册表地址。两个来源都未配置时返回零值，
// 依赖注册表的派生会在使用时报前置条件错误。
func resolveFrackHouse(program types.Pubkey, cfg config.FrantikConfig) (types.Pubkey, error) {
	if cfg.FrackHouse != "" {
		addr, err := types.TryPubkeyFromBase58(cfg.FrackHouse)
		if err != nil {
			return types.Pubkey{}, fmt.Errorf("parse frack house address: %w", err)
		}
		return addr, nil
	}
	if cfg.Owner != "" {
		owner, err := types.TryPubkeyFromBase58(cfg.Owner)
		if err != nil {
			return types.Pubkey{}, fmt.Errorf("parse owner address: %w", err)
		}
		return pda.FrackHouseForOwner(program, owner)
	}
	return types.Pubkey{}, nil
}
