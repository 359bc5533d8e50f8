package recipe

import (
	"strings"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

func testStyle() StyleParameters {
	return StyleParameters{
		LengthCategory: "C Length",
		CutForm:        "L(Layer)",
		CutCategory:    "Women's Cut",
		VolumeZone:     "High",
		FringeType:     "See-through Bang",
		LiftingRange:   []string{"L2", "L4"},
		FaceShapeMatch: []string{"Oval", "Round"},
	}
}

func testChunks() []*retrieval.ScoredResult {
	return []*retrieval.ScoredResult{
		{
			Chunk: &retrieval.Chunk{
				ID:         "FCL003_1",
				SampleCode: "FCL003_1",
				TextKo:     "쇄골 라인 레이어 컷. 목 부위에서 기준선을 만든 후 위로 올라간다",
			},
			Method:      retrieval.MethodVector,
			VectorScore: mo.Some(0.82),
		},
		{
			Chunk: &retrieval.Chunk{
				ID:    "theory-12",
				Title: "Layer weight distribution",
				Text:  "Layers remove weight progressively toward the crown.",
			},
			Method:      retrieval.MethodHybrid,
			VectorScore: mo.Some(0.74),
		},
	}
}

// stageOrder は各言語パックの定型文がプロンプト内でこの順に現れることを検証する
func assertStageOrder(t *testing.T, prompt string, text promptText) {
	t.Helper()

	markers := []string{
		text.Role,
		text.Security,
		text.AnalysisHeader,
		text.ProcedureHeader,
		text.TextureHeader,
		text.StylingHeader,
		text.AdvisoryHeader,
		text.Closing,
	}

	pos := -1
	for _, marker := range markers {
		idx := strings.Index(prompt, marker)
		require.GreaterOrEqual(t, idx, 0, "marker %q not found", marker)
		assert.Greater(t, idx, pos, "marker %q out of order", marker)
		pos = idx
	}
}

func TestAssembler_AllLanguagesShareStructure(t *testing.T) {
	assembler := NewAssembler()

	for lang, pack := range langPacks {
		t.Run(string(lang), func(t *testing.T) {
			prompt := assembler.Build(lang, testStyle(), testChunks())
			assertStageOrder(t, prompt, pack.Text)
		})
	}
}

func TestAssembler_SecurityBlockIsVerbatim(t *testing.T) {
	assembler := NewAssembler()

	for lang := range langPacks {
		prompt := assembler.Build(lang, testStyle(), nil)
		assert.Contains(t, prompt, SecurityRuleBlock(lang), "language %s", lang)
	}
}

func TestAssembler_ChunksBecomeProcedureBlocks(t *testing.T) {
	assembler := NewAssembler()
	prompt := assembler.Build(LanguageKorean, testStyle(), testChunks())

	assert.Contains(t, prompt, "【1. FCL003_1 (82%)】")
	assert.Contains(t, prompt, "【2. Layer weight distribution (74%)】")
	assert.Contains(t, prompt, "쇄골 라인 레이어 컷")

	// 各工程に必須フィールドが含まれる
	pack := packFor(LanguageKorean)
	assert.Contains(t, prompt, pack.Text.StepGoal)
	assert.Contains(t, prompt, pack.Text.StepSectioning)
	assert.Contains(t, prompt, pack.Text.StepLifting)
	assert.Contains(t, prompt, pack.Text.StepTechnique)
}

func TestAssembler_NoChunksUsesFixedStages(t *testing.T) {
	assembler := NewAssembler()
	pack := packFor(LanguageKorean)

	prompt := assembler.Build(LanguageKorean, testStyle(), nil)

	assert.Contains(t, prompt, pack.Text.ReferenceNone)
	for i, stage := range pack.Text.FixedStages {
		assert.Contains(t, prompt, stage, "stage %d", i+1)
	}
}

func TestAssembler_MissingFieldsUsePlaceholders(t *testing.T) {
	assembler := NewAssembler()
	pack := packFor(LanguageEnglish)

	// 前髪とリフティングが未指定でも失敗せず、汎用表現で埋める
	style := StyleParameters{LengthCategory: "C Length"}
	prompt := assembler.Build(LanguageEnglish, style, nil)

	assert.Contains(t, prompt, pack.Text.Placeholder)
	assert.Contains(t, prompt, pack.Text.AllFaces)
	assertStageOrder(t, prompt, pack.Text)
}

func TestAssembler_IsDeterministic(t *testing.T) {
	assembler := NewAssembler()

	first := assembler.Build(LanguageJapanese, testStyle(), testChunks())
	second := assembler.Build(LanguageJapanese, testStyle(), testChunks())
	assert.Equal(t, first, second)
}

func TestAssembler_UnknownLanguageFallsBackToDefault(t *testing.T) {
	assembler := NewAssembler()

	prompt := assembler.Build(Language("zz"), testStyle(), nil)
	assert.Contains(t, prompt, packFor(DefaultLanguage).Text.Role)
}

func TestAssembler_LiftingCodesNotExposed(t *testing.T) {
	// 角度コードはプロンプトの手順ブロックに出さず角度帯で表現する
	assembler := NewAssembler()
	prompt := assembler.Build(LanguageEnglish, testStyle(), nil)

	pack := packFor(LanguageEnglish)
	procedureIdx := strings.Index(prompt, pack.Text.ProcedureHeader)
	require.GreaterOrEqual(t, procedureIdx, 0)
	procedure := prompt[procedureIdx:strings.Index(prompt, pack.Text.TextureHeader)]
	assert.Contains(t, procedure, "45-67.5°")
}

func TestAssembler_BuildAnswerContainsQuestionAndReferences(t *testing.T) {
	assembler := NewAssembler()

	prompt := assembler.BuildAnswer(LanguageKorean, "레이어 컷의 원리는?", testChunks())
	pack := packFor(LanguageKorean)

	assert.Contains(t, prompt, pack.Text.Role)
	assert.Contains(t, prompt, pack.Text.Security)
	assert.Contains(t, prompt, pack.Text.ReferenceHeader)
	assert.Contains(t, prompt, "레이어 컷의 원리는?")
	assert.Contains(t, prompt, pack.Text.Closing)
}

func TestTruncateToBudget(t *testing.T) {
	items := []string{
		strings.Repeat("a", 300),
		strings.Repeat("b", 300),
		strings.Repeat("c", 300),
	}

	// counter なし（概算: 100トークン/項目）、上限250 → 安全マージン200で2件まで
	kept, truncated := truncateToBudget(nil, items, 250)
	assert.Len(t, kept, 2)
	assert.True(t, truncated)

	kept, truncated = truncateToBudget(nil, items, 10000)
	assert.Len(t, kept, 3)
	assert.False(t, truncated)
}
