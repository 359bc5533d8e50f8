package retrieval

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorResult(id string, similarity float64) *ScoredResult {
	return &ScoredResult{
		Chunk:       &Chunk{ID: id},
		Method:      MethodVector,
		VectorScore: mo.Some(similarity),
	}
}

func keywordResult(id string, score int) *ScoredResult {
	return &ScoredResult{
		Chunk:        &Chunk{ID: id},
		Method:       MethodKeyword,
		KeywordScore: mo.Some(score),
	}
}

func TestMerge_DedupesAndMarksHybrid(t *testing.T) {
	// X はベクトルのみ、Y は両方、Z はキーワードのみ
	vector := []*ScoredResult{
		vectorResult("X", 0.9),
		vectorResult("Y", 0.7),
	}
	keyword := []*ScoredResult{
		keywordResult("Y", 3),
		keywordResult("Z", 2),
	}

	merged := Merge(vector, keyword, 10)
	require.Len(t, merged, 3)

	assert.Equal(t, "X", merged[0].Chunk.ID)
	assert.Equal(t, MethodVector, merged[0].Method)

	assert.Equal(t, "Y", merged[1].Chunk.ID)
	assert.Equal(t, MethodHybrid, merged[1].Method)
	assert.InDelta(t, 0.7, merged[1].VectorScore.MustGet(), 1e-9)
	assert.Equal(t, 3, merged[1].KeywordScore.MustGet())

	assert.Equal(t, "Z", merged[2].Chunk.ID)
	assert.Equal(t, MethodKeyword, merged[2].Method)
}

func TestMerge_VectorResultsPrecedeKeywordOnly(t *testing.T) {
	// キーワードスコアが高くても、ベクトル裏付けのある結果が先に並ぶ
	vector := []*ScoredResult{vectorResult("v1", 0.61)}
	keyword := []*ScoredResult{keywordResult("k1", 5)}

	merged := Merge(vector, keyword, 10)
	require.Len(t, merged, 2)
	assert.Equal(t, "v1", merged[0].Chunk.ID)
	assert.Equal(t, "k1", merged[1].Chunk.ID)
}

func TestMerge_VectorTieBreaksByKeywordCountThenID(t *testing.T) {
	vector := []*ScoredResult{
		vectorResult("b", 0.8),
		vectorResult("a", 0.8),
		vectorResult("c", 0.8),
	}
	keyword := []*ScoredResult{
		keywordResult("c", 4),
	}

	merged := Merge(vector, keyword, 10)
	require.Len(t, merged, 3)
	assert.Equal(t, "c", merged[0].Chunk.ID) // 同類似度ではキーワード一致数が多い方が先
	assert.Equal(t, "a", merged[1].Chunk.ID)
	assert.Equal(t, "b", merged[2].Chunk.ID)
}

func TestMerge_TruncatesToFinalLimit(t *testing.T) {
	vector := []*ScoredResult{
		vectorResult("v1", 0.9),
		vectorResult("v2", 0.8),
	}
	keyword := []*ScoredResult{
		keywordResult("k1", 2),
		keywordResult("k2", 1),
	}

	merged := Merge(vector, keyword, 3)
	require.Len(t, merged, 3)
	assert.Equal(t, "v1", merged[0].Chunk.ID)
	assert.Equal(t, "v2", merged[1].Chunk.ID)
	assert.Equal(t, "k1", merged[2].Chunk.ID)
}

func TestMerge_IsDeterministic(t *testing.T) {
	vector := []*ScoredResult{
		vectorResult("v2", 0.8),
		vectorResult("v1", 0.8),
	}
	keyword := []*ScoredResult{
		keywordResult("k2", 2),
		keywordResult("k1", 2),
	}

	first := Merge(vector, keyword, 10)
	second := Merge(vector, keyword, 10)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Chunk.ID, second[i].Chunk.ID)
		assert.Equal(t, first[i].Method, second[i].Method)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil, 5))

	merged := Merge(nil, []*ScoredResult{keywordResult("k1", 1)}, 5)
	require.Len(t, merged, 1)
	assert.Equal(t, "k1", merged[0].Chunk.ID)
}
