package recipe

import (
	"regexp"
	"strings"
)

// redactRule は生成結果に現れてはならない内部表記とその置換表現の組
type redactRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// redactRules は内部メソッドの固有表記を一般表現に置き換える規則。
// 順序に意味がある: フォーミュラ番号を先に処理し、角度コードや
// セクション名は後段でまとめて置換する。
var redactRules = []redactRule{
	{regexp.MustCompile(`(?i)DBS\s+NO\.\s*\d+`), "뒷머리 기법"},
	{regexp.MustCompile(`(?i)DFS\s+NO\.\s*\d+`), "앞머리 기법"},
	{regexp.MustCompile(`(?i)VS\s+NO\.\s*\d+`), "중앙 기법"},
	{regexp.MustCompile(`(?i)HS\s+NO\.\s*\d+`), "상단 기법"},
	{regexp.MustCompile(`(?i)UP[\s-]?STEM\s+NO\.\s*\d+`), "정수리 기법"},
	{regexp.MustCompile(`(?i)NAPE\s+ZONE\s+NO\.\s*\d+`), "목 부위 기법"},

	{regexp.MustCompile(`(?i)가로섹션|Horizontal\s+Section`), "상단 부분"},
	{regexp.MustCompile(`(?i)후대각섹션|Diagonal\s+Backward\s+Section`), "뒷머리 부분"},
	{regexp.MustCompile(`(?i)전대각섹션|Diagonal\s+Forward\s+Section`), "앞쪽 부분"},
	{regexp.MustCompile(`(?i)세로섹션|Vertical\s+Section`), "중앙 부분"},
	{regexp.MustCompile(`(?i)네이프존|Nape\s+Zone`), "목 부위"},
	{regexp.MustCompile(`(?i)업스템|Up[\s-]?Stem`), "정수리 부분"},
	{regexp.MustCompile(`(?i)백존|Back\s+Zone`), "후면 부분"},

	{regexp.MustCompile(`(?i)L[0-8]\s*\([^)]+\)`), "적절한 각도로"},
	{regexp.MustCompile(`(?i)D[0-8]\s*\([^)]+\)`), "자연스러운 방향으로"},

	{regexp.MustCompile(`(?i)42층|42\s+layers?|42-layer`), "전문적인 층 구조"},
	{regexp.MustCompile(`\d+층\s+구조`), "체계적인 층 구조"},

	{regexp.MustCompile(`(?i)9개\s+매트릭스|9\s+matrix|nine\s+matrix`), "체계적인 분류"},
	{regexp.MustCompile(`(?i)매트릭스\s+코드|matrix\s+code`), "스타일 분류"},

	{regexp.MustCompile(`(?i)7개\s+섹션|7개\s+존|7\s+section|7\s+zone`), "여러 부분"},

	{regexp.MustCompile(`(?i)\(Book\s+[A-E],\s+p\.\s*\d+\)`), ""},
	{regexp.MustCompile(`(?i)\(2WAY\s+CUT\s+Book\s+[A-E],\s+Page\s+\d+\)`), ""},
}

// Redact は生成されたレシピ本文から内部メソッドの固有表記を取り除く。
// すべての生成結果は外部に返す前に必ずこの関数を通す。
func Redact(text string) string {
	if text == "" {
		return text
	}
	for _, rule := range redactRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// proprietaryKeywords はメソッド内部構造そのものを尋ねる質問の検出語。
// 小文字比較で部分一致させる。
var proprietaryKeywords = []string{
	"42포뮬러", "42개 포뮬러", "42 formula",
	"9매트릭스", "9개 매트릭스", "9 matrix",
	"dbs no", "dfs no", "vs no", "hs no",
	"42층", "7개 섹션", "7 section",
}

// IsProprietaryQuery は内部メソッドの構造を直接尋ねる質問かどうかを判定する。
// 該当する場合、検索や生成は行わず定型の断り文を返すべきである。
func IsProprietaryQuery(query string) bool {
	lowered := strings.ToLower(query)
	for _, kw := range proprietaryKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

var proprietaryNotices = map[Language]string{
	LanguageKorean:     "죄송합니다. 해당 정보는 핵심 영업 기밀입니다.",
	LanguageEnglish:    "I apologize, but that information is proprietary.",
	LanguageJapanese:   "申し訳ございませんが、その情報は企業秘密です。",
	LanguageVietnamese: "Xin lỗi, thông tin đó là bí mật kinh doanh.",
}

// ProprietaryNotice は指定言語の断り文を返す
func ProprietaryNotice(lang Language) string {
	if msg, ok := proprietaryNotices[lang]; ok {
		return msg
	}
	return proprietaryNotices[DefaultLanguage]
}

// queryNormalizations は口語・ハングル表記の長さ名を正規の列挙値に揃える
var queryNormalizations = []redactRule{
	{regexp.MustCompile(`(?i)A\s*렝스|A\s*랭스|에이\s*렝스|에이\s*랭스|A\s*기장`), "A Length"},
	{regexp.MustCompile(`(?i)B\s*렝스|B\s*랭스|비\s*렝스|비\s*랭스|B\s*기장`), "B Length"},
	{regexp.MustCompile(`(?i)C\s*렝스|C\s*랭스|씨\s*렝스|씨\s*랭스|C\s*기장`), "C Length"},
	{regexp.MustCompile(`(?i)D\s*렝스|D\s*랭스|디\s*렝스|디\s*랭스|D\s*기장`), "D Length"},
	{regexp.MustCompile(`(?i)E\s*렝스|E\s*랭스|이\s*렝스|이\s*랭스|E\s*기장`), "E Length"},
	{regexp.MustCompile(`(?i)F\s*렝스|F\s*랭스|에프\s*렝스|에프\s*랭스|F\s*기장`), "F Length"},
	{regexp.MustCompile(`(?i)G\s*렝스|G\s*랭스|지\s*렝스|지\s*랭스|G\s*기장`), "G Length"},
	{regexp.MustCompile(`(?i)H\s*렝스|H\s*랭스|에이치\s*렝스|에이치\s*랭스|H\s*기장`), "H Length"},
	{regexp.MustCompile(`(?i)레이어|layer`), "Layer"},
	{regexp.MustCompile(`(?i)그래쥬에이션|그라데이션|graduation`), "Graduation"},
}

// NormalizeQuery は検索前にユーザー入力の表記揺れを正規化する
func NormalizeQuery(query string) string {
	for _, rule := range queryNormalizations {
		query = rule.pattern.ReplaceAllString(query, rule.replacement)
	}
	return query
}
