package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign 把 src 中同名字段的值复制到 dst（dst 需传指针）
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap marshals a struct into the given map using its json tags.
// StructToMap 按 json 标签把结构体转成 map
func StructToMap(param any, data map[string]any) error {
	buf, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(buf, &data)
}

// MapToStruct fills a struct from a map using its json tags.
// MapToStruct 按 json 标签把 map 填充进结构体（out 需传指针）
func MapToStruct(data map[string]any, out any) error {
	buf, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(buf, out)
}
