package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/mo"
)

// minTokenLength より短いトークンは検索対象から除外する
const minTokenLength = 2

// candidateMultiplier はスコアリング前に取得する候補の倍率
const candidateMultiplier = 4

// Tokenize はクエリ文字列を小文字化して空白で分割し、
// minTokenLength 未満のトークンを除いた重複なしのトークン列を返す。
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minTokenLength {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// KeywordSearcher は字句一致によるフォールバック検索を実行する
type KeywordSearcher struct {
	store ChunkStore
}

// NewKeywordSearcher は新しい KeywordSearcher を作成する
func NewKeywordSearcher(store ChunkStore) *KeywordSearcher {
	if store == nil {
		panic("retrieval.NewKeywordSearcher: store is nil")
	}
	return &KeywordSearcher{store: store}
}

// Search はクエリテキストをトークン化し、チャンクの本文・タイトル・キーワードタグの
// 連結文字列に部分一致する異なりトークン数をスコアとして降順（同値はID昇順）に
// limit 件まで返す。スコア0の結果は含まない。
func (s *KeywordSearcher) Search(ctx context.Context, query string, limit int) ([]*ScoredResult, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return []*ScoredResult{}, nil
	}

	candidates, err := s.store.KeywordQuery(ctx, tokens, limit*candidateMultiplier)
	if err != nil {
		return nil, fmt.Errorf("keyword query failed: %w", err)
	}

	results := make([]*ScoredResult, 0, len(candidates))
	for _, chunk := range candidates {
		score := matchCount(chunk, tokens)
		if score == 0 {
			continue
		}
		results = append(results, &ScoredResult{
			Chunk:        chunk,
			Method:       MethodKeyword,
			KeywordScore: mo.Some(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		si := results[i].KeywordScore.MustGet()
		sj := results[j].KeywordScore.MustGet()
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

// matchCount はチャンクのテキスト領域に部分一致する異なりトークン数を数える。
// 出現回数ではなく一致したトークンの種類数がスコアになる。
func matchCount(chunk *Chunk, tokens []string) int {
	haystack := strings.ToLower(strings.Join([]string{
		chunk.Title,
		chunk.Text,
		chunk.TextKo,
		strings.Join(chunk.Keywords, " "),
	}, " "))

	count := 0
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			count++
		}
	}
	return count
}
