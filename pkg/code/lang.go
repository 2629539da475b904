package code

import "errors"

// lang stores the English and Chinese variants of a message.
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// Default language is English // 默认语言为英文
var lng = "en"

const FALLBACK_LNG = "en"

var supportedLanguages = []string{"en", "zh_cn"}

// GetMessage 根据全局语言返回对应消息
func (l lang) GetMessage() string {
	switch lng {
	case "zh_cn":
		if l.zh_cn != "" {
			return l.zh_cn
		}
	}
	if l.en != "" {
		return l.en
	}
	return "no message available for language: " + lng
}

// GetSupportedLanguages 返回支持的所有语言
func GetSupportedLanguages() []string {
	return supportedLanguages
}

// SetGlobalDefaultLang sets the language used for response messages.
// Unknown languages fall back to English and report an error.
// SetGlobalDefaultLang 设置全局默认语言，未知语言回退英文
func SetGlobalDefaultLang(language string) error {
	for _, l := range supportedLanguages {
		if language == l {
			lng = language
			return nil
		}
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
