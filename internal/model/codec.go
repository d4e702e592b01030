package model

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/near/borsh-go"

	"frantik-client-sol/internal/errs"
	"frantik-client-sol/internal/types"
)

// 各记录的最小编码长度（变长列表按空列表计）
const (
	FrackHouseLen          = 1 + 1 + 32*3
	OperatingConfigLen     = 1 + 32 + 2 + 2
	FractionManagerLen     = 1 + 32*3 + 1 + 8
	SafetyDepositConfigLen = 1 + 32 + 8 + 1
	WhitelistedFrackerLen  = 1 + 32 + 1

	vaultCacheHead = 1 + 32 + 8 // key + frackHouse + timestamp，其后是 metadata 列表
	indexerHead    = 1 + 32 + 8 // key + frackHouse + page，其后是 vaultCaches 列表

	VaultCacheMinLen        = vaultCacheHead + 4 + 32*2
	FrackHouseIndexerMinLen = indexerHead + 4
)

// Encode 按声明字段序做 borsh 编码。解码端只读取 schema 要求的字节，
// 忽略账户里预分配的尾部填充。
// 指针先解引用再序列化：borsh 会把 Go 指针编成 Option<T>，多出一个存在位字节。
func Encode(record interface{}) ([]byte, error) {
	v := reflect.ValueOf(record)
	if !v.IsValid() {
		return nil, fmt.Errorf("encode: nil record")
	}
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("encode %T: nil record", record)
		}
		v = v.Elem()
	}
	data, err := borsh.Serialize(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", record, err)
	}
	return data, nil
}

func checkLen(data []byte, want int) error {
	if len(data) < want {
		return &errs.TruncatedBufferError{Want: want, Got: len(data)}
	}
	return nil
}

func checkKey(data []byte, want Key) error {
	if Key(data[0]) != want {
		return fmt.Errorf("unexpected record key: got %s, want %s", Key(data[0]), want)
	}
	return nil
}

func DecodeFrackHouse(data []byte) (*FrackHouse, error) {
	if err := checkLen(data, FrackHouseLen); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyFrackHouseV1); err != nil {
		return nil, err
	}
	var v FrackHouse
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode FrackHouse: %w", err)
	}
	return &v, nil
}

func DecodeOperatingConfig(data []byte) (*OperatingConfig, error) {
	if err := checkLen(data, OperatingConfigLen); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyOperatingConfigV1); err != nil {
		return nil, err
	}
	var v OperatingConfig
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode OperatingConfig: %w", err)
	}
	return &v, nil
}

func DecodeFractionManager(data []byte) (*FractionManager, error) {
	if err := checkLen(data, FractionManagerLen); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyFractionManagerV1); err != nil {
		return nil, err
	}
	var v FractionManager
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode FractionManager: %w", err)
	}
	return &v, nil
}

func DecodeFractionSafetyDepositConfig(data []byte) (*FractionSafetyDepositConfig, error) {
	if err := checkLen(data, SafetyDepositConfigLen); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyFractionSafetyDepositConfigV1); err != nil {
		return nil, err
	}
	var v FractionSafetyDepositConfig
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode FractionSafetyDepositConfig: %w", err)
	}
	return &v, nil
}

// DecodeFractionSafetyDepositConfigRaw 按固定字节偏移读取，不走 schema：
// [0]=key, [1:33]=fractionManager, [33:41]=order(LE), [41]=winningConfigType。
// 历史上程序端按该偏移直读，字段值必须与 borsh 路径逐位一致（有测试钉死）。
func DecodeFractionSafetyDepositConfigRaw(data []byte) (*FractionSafetyDepositConfig, error) {
	if err := checkLen(data, SafetyDepositConfigLen); err != nil {
		return nil, err
	}
	var manager types.Pubkey
	copy(manager[:], data[1:33])
	return &FractionSafetyDepositConfig{
		Key:               Key(data[0]),
		FractionManager:   manager,
		Order:             binary.LittleEndian.Uint64(data[33:41]),
		WinningConfigType: WinningConfigType(data[41]),
	}, nil
}

func DecodeWhitelistedFracker(data []byte) (*WhitelistedFracker, error) {
	if err := checkLen(data, WhitelistedFrackerLen); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyWhitelistedFrackerV1); err != nil {
		return nil, err
	}
	var v WhitelistedFracker
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode WhitelistedFracker: %w", err)
	}
	return &v, nil
}

// listExpectedLen 读取 head 偏移处的 u32 列表长度前缀，计算含 tail 的完整编码长度
func listExpectedLen(data []byte, head, tail int) (int, error) {
	if len(data) < head+4 {
		return 0, &errs.TruncatedBufferError{Want: head + 4, Got: len(data)}
	}
	n := int(binary.LittleEndian.Uint32(data[head : head+4]))
	return head + 4 + n*32 + tail, nil
}

func DecodeVaultCache(data []byte) (*VaultCache, error) {
	// metadata 列表之后还有 vault 和 fractionManager 两个定长字段
	want, err := listExpectedLen(data, vaultCacheHead, 32*2)
	if err != nil {
		return nil, err
	}
	if err := checkLen(data, want); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyVaultCacheV1); err != nil {
		return nil, err
	}
	var v VaultCache
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode VaultCache: %w", err)
	}
	return &v, nil
}

func DecodeFrackHouseIndexer(data []byte) (*FrackHouseIndexer, error) {
	want, err := listExpectedLen(data, indexerHead, 0)
	if err != nil {
		return nil, err
	}
	if err := checkLen(data, want); err != nil {
		return nil, err
	}
	if err := checkKey(data, KeyFrackHouseIndexerV1); err != nil {
		return nil, err
	}
	var v FrackHouseIndexer
	if err := borsh.Deserialize(&v, data); err != nil {
		return nil, fmt.Errorf("decode FrackHouseIndexer: %w", err)
	}
	return &v, nil
}
