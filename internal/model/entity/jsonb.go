package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray JSONB字符串数组类型
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan StringArray: %v", value)
	}
	return json.Unmarshal(bytes, a)
}

// CustomFieldValues 自定义字段值（key → 可空字符串）
type CustomFieldValues map[string]*string

func (v CustomFieldValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (v *CustomFieldValues) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan CustomFieldValues: %v", value)
	}
	return json.Unmarshal(bytes, v)
}
