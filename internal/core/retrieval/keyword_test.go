package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "小文字化と重複除去",
			query: "Layer layer VOLUME",
			want:  []string{"layer", "volume"},
		},
		{
			name:  "短いトークンの除外",
			query: "a 레이어 b cut",
			want:  []string{"레이어", "cut"},
		},
		{
			name:  "空クエリ",
			query: "   ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.query))
		})
	}
}

func TestKeywordSearcher_ScoresByDistinctTokens(t *testing.T) {
	// A は volume と crown の2トークン、B は layer の1トークン、C は0トークンに一致する
	store := &stubStore{
		candidates: []*Chunk{
			{ID: "A", Text: "crown volume control for round faces", Keywords: []string{"volume"}},
			{ID: "B", Title: "Layer basics", Text: "base cutting form"},
			{ID: "C", Text: "one length bob maintenance"},
		},
	}
	searcher := NewKeywordSearcher(store)

	results, err := searcher.Search(context.Background(), "volume crown layer", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "A", results[0].Chunk.ID)
	assert.Equal(t, 2, results[0].KeywordScore.MustGet())
	assert.Equal(t, "B", results[1].Chunk.ID)
	assert.Equal(t, 1, results[1].KeywordScore.MustGet())
	assert.Equal(t, MethodKeyword, results[0].Method)
}

func TestKeywordSearcher_MatchesKoreanTextAndKeywords(t *testing.T) {
	store := &stubStore{
		candidates: []*Chunk{
			{ID: "k1", TextKo: "그래쥬에이션은 무게감을 만든다"},
			{ID: "k2", Keywords: []string{"그래쥬에이션", "볼륨"}},
		},
	}
	searcher := NewKeywordSearcher(store)

	results, err := searcher.Search(context.Background(), "그래쥬에이션", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "k1", results[0].Chunk.ID)
	assert.Equal(t, "k2", results[1].Chunk.ID)
}

func TestKeywordSearcher_ScoreTieBreaksByID(t *testing.T) {
	store := &stubStore{
		candidates: []*Chunk{
			{ID: "z", Text: "volume"},
			{ID: "a", Text: "volume"},
		},
	}
	searcher := NewKeywordSearcher(store)

	results, err := searcher.Search(context.Background(), "volume", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Chunk.ID)
	assert.Equal(t, "z", results[1].Chunk.ID)
}

func TestKeywordSearcher_LimitTruncates(t *testing.T) {
	store := &stubStore{
		candidates: []*Chunk{
			{ID: "1", Text: "volume"},
			{ID: "2", Text: "volume"},
			{ID: "3", Text: "volume"},
		},
	}
	searcher := NewKeywordSearcher(store)

	results, err := searcher.Search(context.Background(), "volume", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestKeywordSearcher_EmptyTokensReturnsEmpty(t *testing.T) {
	store := &stubStore{}
	searcher := NewKeywordSearcher(store)

	results, err := searcher.Search(context.Background(), "a", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Nil(t, store.lastTokens)
}
