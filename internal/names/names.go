// Package names 内置白名单地址到展示信息的名录。
// 链上的 WhitelistedFracker 只存地址与激活状态，名称、头像等
// 展示字段由这份随二进制打包的名录补全。
package names

import (
	_ "embed"
	"encoding/json"
	"sync"

	"frantik-client-sol/pkg/logger"
)

//go:embed names.json
var rawNames []byte

// Info 一个白名单成员的展示信息
type Info struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	Twitter string `json:"twitter"`
}

var (
	loadOnce sync.Once
	registry map[string]Info
)

func load() {
	registry = make(map[string]Info)
	if err := json.Unmarshal(rawNames, &registry); err != nil {
		logger.Errorf("[Names] embedded registry parse failed: %v", err)
	}
}

// Lookup 按 base58 地址查询展示信息
func Lookup(address string) (Info, bool) {
	loadOnce.Do(load)
	info, ok := registry[address]
	return info, ok
}

// Count 名录条目数
func Count() int {
	loadOnce.Do(load)
	return len(registry)
}
