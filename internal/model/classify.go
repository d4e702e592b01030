package model

// Classify 尽力把一段未知账户字节归类为已知记录变体。
// 永不返回 error：无法识别的判别符或解码失败一律返回 (nil, KeyUninitialized, false)，
// 批量扫描方负责统计被跳过的账户数。
func Classify(data []byte) (interface{}, Key, bool) {
	if len(data) == 0 {
		return nil, KeyUninitialized, false
	}

	var (
		record interface{}
		err    error
	)
	key := Key(data[0])
	switch key {
	case KeyFrackHouseIndexerV1:
		record, err = DecodeFrackHouseIndexer(data)
	case KeyVaultCacheV1:
		record, err = DecodeVaultCache(data)
	case KeyFractionManagerV1:
		record, err = DecodeFractionManager(data)
	case KeyFractionSafetyDepositConfigV1:
		record, err = DecodeFractionSafetyDepositConfig(data)
	case KeyFrackHouseV1:
		record, err = DecodeFrackHouse(data)
	case KeyWhitelistedFrackerV1:
		record, err = DecodeWhitelistedFracker(data)
	case KeyOperatingConfigV1:
		record, err = DecodeOperatingConfig(data)
	default:
		return nil, KeyUninitialized, false
	}
	if err != nil {
		return nil, KeyUninitialized, false
	}
	return record, key, true
}
