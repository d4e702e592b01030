package config

import (
	"frantik-client-sol/pkg/logger"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // 日志格式，支持 "console" 或 "json"
	LogDir   string `yaml:"log_dir"`  // 日志目录（可为相对路径或绝对路径）
	Level    string `yaml:"level"`    // 日志级别：debug / info / warn / error
	Compress bool   `yaml:"compress"` // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig 表示账本 RPC 节点配置
type RpcConfig struct {
	Endpoint string `yaml:"endpoint"` // RPC 节点地址，例如 https://api.mainnet-beta.solana.com
	Mode     string `yaml:"mode"`     // 提交确认级别：single / finalized
}

// FrantikConfig 表示目标部署配置。
// FrackHouse 与 Owner 二选一：前者直接指定注册表地址，
// 后者由 owner 推导出注册表地址。
type FrantikConfig struct {
	ProgramID  string `yaml:"program_id"`  // frantik 程序地址
	FrackHouse string `yaml:"frack_house"` // frack house 注册表地址（可选）
	Owner      string `yaml:"owner"`       // 部署 owner 地址（可选，用于推导注册表）
}

// Config 是主配置结构体，驱动 fracker 客户端
type Config struct {
	LogConf     LogConfig     `yaml:"logger"`  // 日志配置
	RpcConf     RpcConfig     `yaml:"rpc"`     // RPC 节点配置
	FrantikConf FrantikConfig `yaml:"frantik"` // 部署配置

	RedisAddr string `yaml:"redis_addr"` // Redis 地址，空则不启用断点续传
}
