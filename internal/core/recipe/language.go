package recipe

import (
	"regexp"
	"strings"
)

// Language はレシピ出力の対象言語を表す
type Language string

const (
	LanguageKorean     Language = "ko"
	LanguageEnglish    Language = "en"
	LanguageJapanese   Language = "ja"
	LanguageVietnamese Language = "vi"
)

// DefaultLanguage は言語未指定時のデフォルト
const DefaultLanguage = LanguageKorean

// ParseLanguage は言語指定文字列を Language に解決する。
// 不明な値はデフォルト言語にフォールバックする。
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ko", "kr", "korean":
		return LanguageKorean
	case "en", "english":
		return LanguageEnglish
	case "ja", "jp", "japanese":
		return LanguageJapanese
	case "vi", "vn", "vietnamese":
		return LanguageVietnamese
	default:
		return DefaultLanguage
	}
}

var (
	koreanRe     = regexp.MustCompile(`[ㄱ-ㅎㅏ-ㅣ가-힣]`)
	japaneseRe   = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)
	vietnameseRe = regexp.MustCompile(`(?i)[àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ]`)
)

// DetectLanguage はテキストの文字種から言語を推定する。
// ハングル→韓国語、かな→日本語、ベトナム語声調記号→ベトナム語、
// いずれにも該当しなければ英語と判定する。
func DetectLanguage(text string) Language {
	if koreanRe.MatchString(text) {
		return LanguageKorean
	}
	if japaneseRe.MatchString(text) {
		return LanguageJapanese
	}
	if vietnameseRe.MatchString(text) {
		return LanguageVietnamese
	}
	return LanguageEnglish
}
