// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// SettingsDTO the complete settings view returned to callers
// SettingsDTO 返回给调用方的完整设置视图
// 每个识别字段都存在，未持久化的字段取默认值；logo 为派生字段
type SettingsDTO struct {
	Domain                  string  `json:"domain"`
	LogoFile                string  `json:"logo_file"`
	Language                string  `json:"language"`
	CurrencyCode            string  `json:"currency_code"`
	CurrencySymbol          string  `json:"currency_symbol"`
	CurrencyFormat          string  `json:"currency_format"`
	ThousandSeparator       string  `json:"thousand_separator"`
	DecimalSeparator        string  `json:"decimal_separator"`
	DecimalNumber           int     `json:"decimal_number"`
	Timezone                string  `json:"timezone"`
	DateFormat              string  `json:"date_format"`
	TimeFormat              string  `json:"time_format"`
	DefaultShippingCountry  string  `json:"default_shipping_country"`
	DefaultShippingState    string  `json:"default_shipping_state"`
	DefaultShippingCity     string  `json:"default_shipping_city"`
	DefaultProductSorting   string  `json:"default_product_sorting"`
	ProductFields           string  `json:"product_fields"`
	ProductsLimit           int     `json:"products_limit"`
	WeightUnit              string  `json:"weight_unit"`
	LengthUnit              string  `json:"length_unit"`
	HideBillingAddress      bool    `json:"hide_billing_address"`
	OrderConfirmationCopyTo string  `json:"order_confirmation_copy_to"`
	Logo                    *string `json:"logo"`
}

// LogoUploadDTO upload result
// LogoUploadDTO 上传结果
type LogoUploadDTO struct {
	File string `json:"file"`
	Size int64  `json:"size"`
}
