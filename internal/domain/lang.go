package domain

import "strings"

const DefaultLang = "zh"

// NormalizeLang folds the accepted Chinese variants onto "zh" and everything
// else onto "en". An empty value falls back to the default language.
func NormalizeLang(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultLang
	case "zh", "cn", "zh-cn", "zh-hans":
		return "zh"
	default:
		return "en"
	}
}
