package recipe

import (
	"context"

	"github.com/samber/mo"
)

// Generator はプロンプトからテキストを生成するLLMクライアントのインターフェース
type Generator interface {
	// Generate はプロンプトに対する応答全文を生成する
	Generate(ctx context.Context, prompt string) (string, error)
}

// StreamingGenerator は生成途中の断片を逐次配信できる Generator
type StreamingGenerator interface {
	Generator

	// GenerateStream は応答を逐次生成し、断片ごとに onFragment を呼び出す。
	// 戻り値は結合済みの応答全文。
	GenerateStream(ctx context.Context, prompt string, onFragment func(fragment string)) (string, error)
}

// GenerateParams はレシピ生成のパラメータを表す。
// Query と Style の少なくとも一方が必要で、両方指定された場合は Query を優先する。
type GenerateParams struct {
	Query      string                     // 自由テキストの検索クエリ
	Style      mo.Option[StyleParameters] // 構造化スタイルパラメータ
	Language   Language                   // 空の場合はクエリから自動判定
	TopK       int                        // 最終的に参照するチャンク数（0 はデフォルト）
	OnFragment func(fragment string)      // 指定時はストリーミング生成（秘匿フィルタ適用前の断片）
}

// Source は生成に使用された参照チャンクの出典情報を表す
type Source struct {
	ID         string  `json:"id"`
	Title      string  `json:"title,omitempty"`
	SampleCode string  `json:"sample_code,omitempty"`
	Method     string  `json:"method"`
	Similarity float64 `json:"similarity,omitempty"`
}

// GenerateResult はレシピ生成の結果を表す
type GenerateResult struct {
	RecipeText   string   `json:"recipe_text"`
	Language     Language `json:"language"`
	Sources      []Source `json:"sources"`
	SourcesUsed  int      `json:"sources_used"`
	UsedFallback bool     `json:"used_fallback"`
}

// AnswerResult は理論Q&Aの結果を表す
type AnswerResult struct {
	AnswerText   string   `json:"answer_text"`
	Language     Language `json:"language"`
	Sources      []Source `json:"sources"`
	SourcesUsed  int      `json:"sources_used"`
	UsedFallback bool     `json:"used_fallback"`
}
