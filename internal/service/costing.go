package service

import (
	"math"
	"sort"
	"strings"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
)

// Round2 金额取两位小数，0.5向远离零方向进位
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SumGemstoneCost 宝石成本 = 各用料行成本之和
func SumGemstoneCost(lines []entity.GemstoneLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.LineCost
	}
	return Round2(sum)
}

// AggregateTotalCost 总成本：调用方显式给了就用调用方的，否则 镶嵌+钻石+宝石
func AggregateTotalCost(settingCost, diamondCost, gemstoneCost float64, callerTotal *float64) float64 {
	if callerTotal != nil {
		return Round2(*callerTotal)
	}
	return Round2(settingCost + diamondCost + gemstoneCost)
}

// sanitizeStringList 去首尾空白、剔除空串、大小写不敏感去重（保留首次出现）
func sanitizeStringList(values []string) entity.StringArray {
	if len(values) == 0 {
		return entity.StringArray{}
	}
	seen := make(map[string]bool, len(values))
	out := make(entity.StringArray, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		lower := strings.ToLower(v)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, v)
	}
	return out
}

// sanitizeCustomFields key大小写不敏感去重，空白值丢弃
func sanitizeCustomFields(values map[string]*string) entity.CustomFieldValues {
	if len(values) == 0 {
		return entity.CustomFieldValues{}
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]bool, len(values))
	out := make(entity.CustomFieldValues, len(values))
	for _, rawKey := range keys {
		value := values[rawKey]
		key := strings.TrimSpace(rawKey)
		if key == "" {
			continue
		}
		lower := strings.ToLower(key)
		if seen[lower] {
			continue
		}
		if value == nil || strings.TrimSpace(*value) == "" {
			continue
		}
		seen[lower] = true
		out[key] = value
	}
	return out
}

// hasNonBlank 列表里是否存在非空白项
func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
