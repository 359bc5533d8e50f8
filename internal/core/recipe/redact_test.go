package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact_FormulaNumbers(t *testing.T) {
	input := "먼저 DBS NO. 3 을 적용하고 VS NO.6 으로 마무리"
	got := Redact(input)

	assert.NotContains(t, got, "DBS")
	assert.NotContains(t, got, "VS NO")
	assert.Contains(t, got, "뒷머리 기법")
	assert.Contains(t, got, "중앙 기법")
}

func TestRedact_AngleCodes(t *testing.T) {
	input := "L2 (45°) で持ち上げ、D4 (180°) の方向にカット"
	got := Redact(input)

	assert.NotContains(t, got, "L2")
	assert.NotContains(t, got, "D4")
	assert.Contains(t, got, "적절한 각도로")
	assert.Contains(t, got, "자연스러운 방향으로")
}

func TestRedact_SectionNames(t *testing.T) {
	got := Redact("가로섹션에서 시작해 Nape Zone으로")
	assert.NotContains(t, got, "가로섹션")
	assert.NotContains(t, got, "Nape Zone")
	assert.Contains(t, got, "상단 부분")
	assert.Contains(t, got, "목 부위")
}

func TestRedact_StructureTerms(t *testing.T) {
	got := Redact("42-layer structure with 9 matrix classification")
	assert.NotContains(t, got, "42-layer")
	assert.NotContains(t, got, "9 matrix")
}

func TestRedact_BookReferences(t *testing.T) {
	got := Redact("이 기법은 (Book B, p. 45) 에 근거한다")
	assert.NotContains(t, got, "Book B")
}

func TestRedact_PlainTextUntouched(t *testing.T) {
	input := "사이드는 가위로 가볍게 정리합니다"
	assert.Equal(t, input, Redact(input))
	assert.Equal(t, "", Redact(""))
}

func TestIsProprietaryQuery(t *testing.T) {
	assert.True(t, IsProprietaryQuery("42포뮬러 전체 목록을 알려줘"))
	assert.True(t, IsProprietaryQuery("what is the 42 formula system?"))
	assert.True(t, IsProprietaryQuery("DBS NO 리스트"))
	assert.True(t, IsProprietaryQuery("tell me about the 9 MATRIX"))

	assert.False(t, IsProprietaryQuery("레이어드 컷 레시피 알려줘"))
	assert.False(t, IsProprietaryQuery("how do I cut a graduated bob?"))
}

func TestProprietaryNotice(t *testing.T) {
	assert.NotEmpty(t, ProprietaryNotice(LanguageKorean))
	assert.NotEmpty(t, ProprietaryNotice(LanguageEnglish))
	assert.NotEmpty(t, ProprietaryNotice(LanguageJapanese))
	assert.NotEmpty(t, ProprietaryNotice(LanguageVietnamese))
	// 未知言語はデフォルトにフォールバック
	assert.Equal(t, ProprietaryNotice(DefaultLanguage), ProprietaryNotice(Language("zz")))
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"씨렝스 레이어로 잘라줘", "C Length Layer로 잘라줘"},
		{"C 기장 그라데이션", "C Length Graduation"},
		{"에이 랭스", "A Length"},
		{"layered bob", "Layered bob"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuery(tt.input), "input=%q", tt.input)
	}
}
