package retrieval

import "context"

// VectorMatch はチャンクストアが返すベクトル検索の生マッチを表す
type VectorMatch struct {
	Chunk      *Chunk
	Similarity float64
}

// ChunkStore はチャンクストアへの読み取り専用アクセスインターフェース。
// 実装は閾値や件数でのフィルタを行ってよいが、最終的な順序付けと
// 閾値の保証は VectorSearcher / KeywordSearcher 側が行う。
type ChunkStore interface {
	// VectorQuery はクエリベクトルに対する類似チャンクを返す。
	// ベクトル次元がストアと一致しない場合は ErrDimensionMismatch を返す。
	VectorQuery(ctx context.Context, vector []float32, threshold float64, limit int) ([]*VectorMatch, error)

	// KeywordQuery はいずれかのトークンに一致するチャンク候補を返す。
	// スコアリングは呼び出し側が行うため、candidateLimit 件まで広めに返してよい。
	KeywordQuery(ctx context.Context, tokens []string, candidateLimit int) ([]*Chunk, error)
}
