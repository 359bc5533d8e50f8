package recipe

import (
	"fmt"
	"strings"

	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

const (
	// defaultContextBudget は参照チャンク部分に割り当てるトークン上限
	defaultContextBudget = 2000

	// excerptRunes はチャンク本文の抜粋長
	excerptRunes = 100
)

// Assembler は検索結果とスタイルパラメータから生成用プロンプトを組み立てる。
// 組み立ては決定論的であり、同じ入力からは常に同じプロンプトが得られる。
type Assembler struct {
	counter       *TokenCounter
	contextBudget int
}

// AssemblerOption は Assembler のオプション設定
type AssemblerOption func(*Assembler)

// WithTokenCounter はトークンカウンタを差し替える
func WithTokenCounter(counter *TokenCounter) AssemblerOption {
	return func(a *Assembler) {
		a.counter = counter
	}
}

// WithContextBudget は参照チャンクのトークン上限を上書きする
func WithContextBudget(budget int) AssemblerOption {
	return func(a *Assembler) {
		if budget > 0 {
			a.contextBudget = budget
		}
	}
}

// NewAssembler は新しい Assembler を作成する。
// tiktoken の初期化に失敗した場合は文字数ベースの概算にフォールバックする。
func NewAssembler(opts ...AssemblerOption) *Assembler {
	counter, err := NewTokenCounter()
	if err != nil {
		counter = nil
	}

	a := &Assembler{
		counter:       counter,
		contextBudget: defaultContextBudget,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build は対象言語のレシピ生成プロンプトを組み立てる。
//
// すべての言語で同じ6つの構造ステージが同じ順序で現れる:
//  1. 役割宣言
//  2. 秘匿ルールブロック（全言語共通の契約）
//  3. スタイルパラメータの分析サマリ（用語テーブルでローカライズ）
//  4. カット手順（取得チャンクごと、なければ固定5工程）
//  5. 質感処理・スタイリング・顔型/髪質アドバイス
//  6. 出力言語の固定
//
// 必須フィールドが欠けていても失敗せず、言語に応じた汎用表現で埋める。
func (a *Assembler) Build(lang Language, params StyleParameters, chunks []*retrieval.ScoredResult) string {
	pack := packFor(lang)
	terms := pack.Terms
	text := pack.Text

	var sb strings.Builder

	// ステージ1: 役割宣言
	sb.WriteString(text.Role)
	sb.WriteString("\n\n")

	// ステージ2: 秘匿ルール
	sb.WriteString(text.Security)
	sb.WriteString("\n\n")

	// ステージ3: 分析サマリ
	sb.WriteString(text.AnalysisHeader)
	sb.WriteString("\n")
	writeAnalysisLine(&sb, text.LabelLength, terms.lookup(terms.LengthDesc, params.LengthCategory, text.Placeholder))
	writeAnalysisLine(&sb, text.LabelForm, terms.lookup(terms.FormDesc, formKey(params.CutForm), text.Placeholder))
	writeAnalysisLine(&sb, text.LabelVolume, terms.lookup(terms.VolumeDesc, params.VolumeZone, text.Placeholder))
	writeAnalysisLine(&sb, text.LabelFringe, terms.lookup(terms.FringeDesc, params.FringeType, text.Placeholder))
	writeAnalysisLine(&sb, text.LabelLifting, joinOrPlaceholder(params.LiftingRange, text.Placeholder))
	writeAnalysisLine(&sb, text.LabelTexture, joinOrPlaceholder(params.TextureTechnique, text.Placeholder))
	writeAnalysisLine(&sb, text.LabelFaces, faceShapeList(terms, params.FaceShapeMatch, text.AllFaces))
	sb.WriteString("\n")

	// ステージ4: 参照チャンクとカット手順
	if len(chunks) > 0 {
		sb.WriteString(text.ReferenceHeader)
		sb.WriteString("\n")
		excerpts := make([]string, 0, len(chunks))
		for i, c := range chunks {
			excerpts = append(excerpts, fmt.Sprintf("%d. %s: %s", i+1, chunkLabel(c.Chunk), chunkExcerpt(c.Chunk)))
		}
		kept, truncated := truncateToBudget(a.counter, excerpts, a.contextBudget)
		sb.WriteString(strings.Join(kept, "\n"))
		if truncated {
			sb.WriteString("\n...")
		}
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(text.ReferenceNone)
		sb.WriteString("\n\n")
	}

	sb.WriteString(text.ProcedureHeader)
	sb.WriteString("\n")
	if len(chunks) > 0 {
		for i, c := range chunks {
			a.writeProcedureBlock(&sb, text, i+1, chunkBlockTitle(c), chunkGoal(c.Chunk, text.Placeholder), params)
		}
	} else {
		for i, stage := range text.FixedStages {
			a.writeProcedureBlock(&sb, text, i+1, stage, text.Placeholder, params)
		}
	}
	sb.WriteString("\n")

	// ステージ5: 質感・スタイリング・アドバイス
	texture1, texture2 := textureTechniques(params)
	sb.WriteString(text.TextureHeader)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(text.TextureBody, texture1, texture2))
	sb.WriteString("\n\n")

	sb.WriteString(text.StylingHeader)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(text.StylingBody,
		dryMethod(params, text.Placeholder),
		ironUsage(params, text.Placeholder),
		productAdvice(params, text.Placeholder),
	))
	sb.WriteString("\n\n")

	sb.WriteString(text.AdvisoryHeader)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(text.AdvisoryBody,
		faceShapeList(terms, params.FaceShapeMatch, text.AllFaces),
		orPlaceholder(params.TextureType, text.Placeholder),
	))
	sb.WriteString("\n\n")

	// ステージ6: 出力言語の固定
	sb.WriteString(text.Closing)
	sb.WriteString("\n")

	return sb.String()
}

// BuildAnswer は理論Q&A用のプロンプトを組み立てる。
// 役割宣言と秘匿ルールはレシピ生成と共通で、検索結果を根拠資料として添える。
func (a *Assembler) BuildAnswer(lang Language, question string, chunks []*retrieval.ScoredResult) string {
	pack := packFor(lang)
	text := pack.Text

	var sb strings.Builder
	sb.WriteString(text.Role)
	sb.WriteString("\n\n")
	sb.WriteString(text.Security)
	sb.WriteString("\n\n")

	if len(chunks) > 0 {
		sb.WriteString(text.ReferenceHeader)
		sb.WriteString("\n")
		excerpts := make([]string, 0, len(chunks))
		for i, c := range chunks {
			excerpts = append(excerpts, fmt.Sprintf("%d. %s: %s", i+1, chunkLabel(c.Chunk), chunkExcerpt(c.Chunk)))
		}
		kept, truncated := truncateToBudget(a.counter, excerpts, a.contextBudget)
		sb.WriteString(strings.Join(kept, "\n"))
		if truncated {
			sb.WriteString("\n...")
		}
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(text.ReferenceNone)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Q: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(text.Closing)
	sb.WriteString("\n")

	return sb.String()
}

// writeProcedureBlock は手順1工程分のサブブロックを書き出す。
// 各工程には分割方法・リフティング角度・比率付き技法・目的が必ず含まれる。
func (a *Assembler) writeProcedureBlock(sb *strings.Builder, text promptText, n int, title, goal string, params StyleParameters) {
	fmt.Fprintf(sb, "\n【%d. %s】\n", n, title)
	fmt.Fprintf(sb, "- %s: %s\n", text.StepGoal, goal)
	fmt.Fprintf(sb, "- %s: %s\n", text.StepSectioning, sectioningDesc(params, text.Placeholder))
	fmt.Fprintf(sb, "- %s: %s\n", text.StepLifting, liftingDesc(params, text.Placeholder))
	fmt.Fprintf(sb, "- %s: %s\n", text.StepTechnique, techniqueRatio(params, text.Placeholder))
}

func writeAnalysisLine(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

// formKey はカット形状の内部値から用語テーブルのキー（先頭1文字）を取り出す
func formKey(cutForm string) string {
	trimmed := strings.TrimSpace(cutForm)
	if trimmed == "" {
		return ""
	}
	head := strings.ToUpper(trimmed[:1])
	switch head {
	case "O", "G", "L":
		return head
	}
	return trimmed
}

func joinOrPlaceholder(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, ", ")
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func faceShapeList(terms termTable, shapes []string, allFaces string) string {
	if len(shapes) == 0 {
		return allFaces
	}
	localized := make([]string, 0, len(shapes))
	for _, s := range shapes {
		localized = append(localized, terms.lookup(terms.FaceShapeDesc, s, s))
	}
	return strings.Join(localized, ", ")
}

func chunkLabel(c *retrieval.Chunk) string {
	if c.SampleCode != "" {
		return c.SampleCode
	}
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

func chunkBlockTitle(r *retrieval.ScoredResult) string {
	label := chunkLabel(r.Chunk)
	if sim, ok := r.VectorScore.Get(); ok {
		return fmt.Sprintf("%s (%.0f%%)", label, sim*100)
	}
	return label
}

func chunkExcerpt(c *retrieval.Chunk) string {
	text := c.TextKo
	if text == "" {
		text = c.Text
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > excerptRunes {
		return string(runes[:excerptRunes]) + "..."
	}
	return string(runes)
}

// chunkGoal はチャンク本文の最初の一文を工程の目的として使う
func chunkGoal(c *retrieval.Chunk, placeholder string) string {
	text := c.TextKo
	if text == "" {
		text = c.Text
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return placeholder
	}
	if idx := strings.IndexAny(text, ".。"); idx > 0 {
		return strings.TrimSpace(text[:idx])
	}
	runes := []rune(text)
	if len(runes) > excerptRunes {
		return string(runes[:excerptRunes])
	}
	return text
}

// sectioningDesc は主セクションとボリューム位置から分割方法の指示を導く
func sectioningDesc(params StyleParameters, placeholder string) string {
	if params.SectionPrimary != "" {
		return params.SectionPrimary + " 1-2cm"
	}
	if params.VolumeZone == "High" {
		return "1-2cm (radial)"
	}
	if params.VolumeZone != "" {
		return "1-2cm (horizontal)"
	}
	return placeholder
}

// liftingDesc はリフティング角度コードを角度帯の表現に変換する。
// コードそのものは出力に含めない。
func liftingDesc(params StyleParameters, placeholder string) string {
	if len(params.LiftingRange) == 0 {
		return placeholder
	}
	switch params.LiftingRange[0] {
	case "L0", "L1":
		return "0-22.5°"
	case "L2", "L3":
		return "45-67.5°"
	default:
		return "90°+"
	}
}

// techniqueRatio はカット形状から比率付きの技法指示を導く。
// 比率は目安であり、複数技法が重複してよいため合計100%である必要はない。
func techniqueRatio(params StyleParameters, placeholder string) string {
	switch formKey(params.CutForm) {
	case "O":
		return "Blunt 70% + Point 30%"
	case "G":
		return "Graduation 60% + Slide 40%"
	case "L":
		return "Layer 65% + Slide 35%"
	}
	return placeholder
}

func textureTechniques(params StyleParameters) (string, string) {
	first := "Slide/Point 40%"
	second := "Thinning/Stroke 30%"
	for _, t := range params.TextureTechnique {
		switch t {
		case "Slide Cut":
			first = "Slide Cut 40%"
		case "Point Cut":
			first = "Point Cut 40%"
		case "Stroke Cut":
			second = "Stroke Cut 30%"
		}
	}
	return first, second
}

func dryMethod(params StyleParameters, placeholder string) string {
	switch params.VolumeZone {
	case "High":
		return "root lift with round brush"
	case "Low":
		return "natural fall, minimal lift"
	case "Medium":
		return "medium lift, follow the fall line"
	}
	return placeholder
}

func ironUsage(params StyleParameters, placeholder string) string {
	switch formKey(params.CutForm) {
	case "L":
		return "32mm C-curl on the ends, 160-180°C"
	case "O":
		return "not required (natural fall)"
	case "G":
		return "26-32mm soft wave, 160-180°C"
	}
	return placeholder
}

func productAdvice(params StyleParameters, placeholder string) string {
	if strings.Contains(params.TextureType, "Straight") {
		return "volume mousse or spray"
	}
	if params.TextureType != "" {
		return "curl cream or serum"
	}
	return placeholder
}
