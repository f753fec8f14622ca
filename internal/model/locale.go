package model

// 支持的语言
const (
	LocaleZh = "zh"
	LocaleEn = "en"
)

// Locales 全部支持的语言，顺序即协商优先级
var Locales = []string{LocaleZh, LocaleEn}

// ValidLocale 是否为支持的语言
func ValidLocale(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}
