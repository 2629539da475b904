// Package domain 定义领域模型和接口
package domain

// 设置文档的全部字段名
// 识别字段集合与默认值表的键完全一致，更新时其余键一律忽略
const (
	FieldDomain                  = "domain"
	FieldLogoFile                = "logo_file"
	FieldLanguage                = "language"
	FieldCurrencyCode            = "currency_code"
	FieldCurrencySymbol          = "currency_symbol"
	FieldCurrencyFormat          = "currency_format"
	FieldThousandSeparator       = "thousand_separator"
	FieldDecimalSeparator        = "decimal_separator"
	FieldDecimalNumber           = "decimal_number"
	FieldTimezone                = "timezone"
	FieldDateFormat              = "date_format"
	FieldTimeFormat              = "time_format"
	FieldShippingCountry         = "default_shipping_country"
	FieldShippingState           = "default_shipping_state"
	FieldShippingCity            = "default_shipping_city"
	FieldProductSorting          = "default_product_sorting"
	FieldProductFields           = "product_fields"
	FieldProductsLimit           = "products_limit"
	FieldWeightUnit              = "weight_unit"
	FieldLengthUnit              = "length_unit"
	FieldHideBillingAddress      = "hide_billing_address"
	FieldOrderConfirmationCopyTo = "order_confirmation_copy_to"
)

// FieldKind 字段的类型化校验规则
type FieldKind int

const (
	// KindString 字符串字段，非字符串输入归一为空串
	KindString FieldKind = iota
	// KindNonNegativeInt 非负整数字段，解析失败或为负时回落为 0
	KindNonNegativeInt
	// KindPositiveInt 正整数字段，解析失败时保留解析器的无效哨兵值
	KindPositiveInt
	// KindBool 布尔字段，解析失败时取默认值 false
	KindBool
)

// settingsDefaults 默认值模板
// 模板本身不可变，消费方一律通过 DefaultSettings 获取副本
var settingsDefaults = map[string]any{
	FieldDomain:             "",
	FieldLogoFile:           "",
	FieldLanguage:           "en",
	FieldCurrencyCode:       "USD",
	FieldCurrencySymbol:     "$",
	FieldCurrencyFormat:     "${amount}",
	FieldThousandSeparator:  ",",
	FieldDecimalSeparator:   ".",
	FieldDecimalNumber:      2,
	FieldTimezone:           "Asia/Singapore",
	FieldDateFormat:         "MMMM D, YYYY",
	FieldTimeFormat:         "h:mm a",
	FieldShippingCountry:    "",
	FieldShippingState:      "",
	FieldShippingCity:       "",
	FieldProductSorting:     "stock_status,price,position",
	FieldProductFields:      "path,id,name,category_id,category_name,sku,images,enabled,discontinued,stock_status,stock_quantity,price,on_sale,regular_price,attributes,tags,position",
	FieldProductsLimit:      30,
	FieldWeightUnit:         "kg",
	FieldLengthUnit:         "cm",
	FieldHideBillingAddress: false,

	FieldOrderConfirmationCopyTo: "",
}

// SettingsFields 返回识别字段名列表（未排序）
func SettingsFields() []string {
	fields := make([]string, 0, len(settingsDefaults))
	for k := range settingsDefaults {
		fields = append(fields, k)
	}
	return fields
}

// settingsFieldRules 字段到校验规则的映射
// 键集合必须与 settingsDefaults 保持一致
var settingsFieldRules = map[string]FieldKind{
	FieldDomain:                  KindString,
	FieldLogoFile:                KindString,
	FieldLanguage:                KindString,
	FieldCurrencyCode:            KindString,
	FieldCurrencySymbol:          KindString,
	FieldCurrencyFormat:          KindString,
	FieldThousandSeparator:       KindString,
	FieldDecimalSeparator:        KindString,
	FieldDecimalNumber:           KindNonNegativeInt,
	FieldTimezone:                KindString,
	FieldDateFormat:              KindString,
	FieldTimeFormat:              KindString,
	FieldShippingCountry:         KindString,
	FieldShippingState:           KindString,
	FieldShippingCity:            KindString,
	FieldProductSorting:          KindString,
	FieldProductFields:           KindString,
	FieldProductsLimit:           KindPositiveInt,
	FieldWeightUnit:              KindString,
	FieldLengthUnit:              KindString,
	FieldHideBillingAddress:      KindBool,
	FieldOrderConfirmationCopyTo: KindString,
}

// DefaultSettings 返回默认值表的全新副本
func DefaultSettings() map[string]any {
	out := make(map[string]any, len(settingsDefaults))
	for k, v := range settingsDefaults {
		out[k] = v
	}
	return out
}

// FieldRule 返回字段的校验规则
func FieldRule(field string) (FieldKind, bool) {
	kind, ok := settingsFieldRules[field]
	return kind, ok
}

// IsRecognizedField 判断字段是否属于识别集合
func IsRecognizedField(field string) bool {
	_, ok := settingsDefaults[field]
	return ok
}
