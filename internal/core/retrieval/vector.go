package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/mo"
)

// VectorSearcher はチャンクストアに対するベクトル類似検索を実行する
type VectorSearcher struct {
	store ChunkStore
}

// NewVectorSearcher は新しい VectorSearcher を作成する
func NewVectorSearcher(store ChunkStore) *VectorSearcher {
	if store == nil {
		panic("retrieval.NewVectorSearcher: store is nil")
	}
	return &VectorSearcher{store: store}
}

// Search はクエリベクトルに対して cosine 類似度が threshold 以上のチャンクを
// 類似度降順（同値はID昇順）で limit 件まで返す。
// 空のストアはエラーではなく空の結果を返す。
// ベクトル次元の不一致は ErrDimensionMismatch として伝播する（縮退対象外）。
func (s *VectorSearcher) Search(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*ScoredResult, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", ErrDimensionMismatch)
	}
	if limit <= 0 {
		return []*ScoredResult{}, nil
	}

	matches, err := s.store.VectorQuery(ctx, embedding, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}

	// ストア実装に依存せず閾値と順序をここで確定させる
	results := make([]*ScoredResult, 0, len(matches))
	for _, m := range matches {
		if m.Similarity < threshold {
			continue
		}
		results = append(results, &ScoredResult{
			Chunk:       m.Chunk,
			Method:      MethodVector,
			VectorScore: mo.Some(m.Similarity),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		si := results[i].VectorScore.MustGet()
		sj := results[j].VectorScore.MustGet()
		if si != sj {
			return si > sj
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
