package service

import "encoding/json"

// Field 部分更新字段包装：区分"请求里没带"与"带了且为null"。
// 零值表示字段缺席；JSON里出现过（哪怕是null）则 Set 为 true。
type Field[T any] struct {
	Value T
	Set   bool
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
