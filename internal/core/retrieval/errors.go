package retrieval

import "errors"

var (
	// ErrDimensionMismatch はクエリベクトルの次元数がストア側と一致しない場合のエラー。
	// 設定またはデータ不整合であり、リトライしてはならない。
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable は埋め込み生成がクォータ超過やネットワーク障害で
	// 利用できない場合のエラー。キーワード検索のみに縮退して処理を継続できる。
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrQueryRequired は検索クエリが空の場合のエラー
	ErrQueryRequired = errors.New("query is required")
)
