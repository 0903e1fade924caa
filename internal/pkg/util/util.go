package util

import (
	"reflect"
	"sort"
	"strings"
)

// CanonicalOptionKey 將規格選擇轉成正規化字串，作為購物車行項目的識別鍵
// 相同 key/value 不論插入順序都會產生同一個字串；空 map 與 nil 視為相同
// 例: {"Cor":"Azul","Tamanho":"M"} -> "Cor=Azul;Tamanho=M"
func CanonicalOptionKey(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(options[k])
	}
	return sb.String()
}

// OptionsEqual 以 key/value 集合比較兩組規格選擇，與順序無關
func OptionsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// IsNil 檢查介面是否為 nil
// 注意：這個函數會同時檢查介面的型別和值
func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Array, reflect.Chan, reflect.Slice:
		return reflect.ValueOf(i).IsNil()
	}

	return false
}
