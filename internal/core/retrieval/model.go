package retrieval

import (
	"github.com/samber/mo"
)

// Chunk は検索対象となる参照単位（理論チャンクまたはレシピサンプル）を表す。
// オフラインのインジェスト処理で作成され、検索パスからは読み取り専用。
type Chunk struct {
	ID         string    // 安定した一意識別子
	Title      string    // セクションタイトル（理論チャンクの場合）
	Text       string    // 本文
	TextKo     string    // 韓国語本文（多言語チャンクの場合）
	Keywords   []string  // 字句タグ（順序は意味を持たない）
	Category   string    // サブカテゴリ
	Importance int       // 重要度（ランキング補助メタデータ）
	SampleCode string    // レシピサンプルコード（例: FAL001_1、理論チャンクは空）
	Gender     string    // female / male（レシピサンプルのみ）
	Embedding  []float32 // 取り込み時に生成済みの埋め込みベクトル
}

// SearchMethod は結果を生成した検索手法を表す
type SearchMethod string

const (
	// MethodVector はベクトル類似検索による結果
	MethodVector SearchMethod = "vector"
	// MethodKeyword はキーワード検索による結果
	MethodKeyword SearchMethod = "keyword"
	// MethodHybrid は両方の検索でヒットした結果
	MethodHybrid SearchMethod = "hybrid"
)

// ScoredResult はスコア付きの検索結果を表す。
// マージ後の結果リスト内で同一チャンクIDは一度しか現れない。
type ScoredResult struct {
	Chunk        *Chunk
	Method       SearchMethod
	VectorScore  mo.Option[float64] // cosine類似度（ベクトル検索でヒットした場合のみ）
	KeywordScore mo.Option[int]     // 一致した異なりトークン数（キーワード検索でヒットした場合のみ）
}

// Score は代表スコアを返す。ベクトル類似度を優先し、
// キーワードのみの結果は一致トークン数をそのまま返す。
func (r *ScoredResult) Score() float64 {
	if sim, ok := r.VectorScore.Get(); ok {
		return sim
	}
	if count, ok := r.KeywordScore.Get(); ok {
		return float64(count)
	}
	return 0
}
