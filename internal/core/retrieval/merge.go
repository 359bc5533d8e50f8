package retrieval

import "sort"

// Merge はベクトル検索結果とキーワード検索結果をチャンクID単位で統合し、
// finalLimit 件までの単一ランキングを返す。
//
// 順序付けの方針:
//   - ベクトル検索でヒットした結果（ハイブリッド含む）が常に先頭に並ぶ。
//     意味的な裏付けのある結果は字句一致のみの結果より信頼できるため。
//   - ベクトル側は類似度降順、同値はキーワード一致数降順、それでも同値ならID昇順。
//   - キーワードのみの結果は末尾にスコア降順（同値はID昇順）で続く。
//
// 両方でヒットしたチャンクは一度だけ現れ、両方のスコアを保持する。
func Merge(vectorResults, keywordResults []*ScoredResult, finalLimit int) []*ScoredResult {
	if finalLimit <= 0 {
		return []*ScoredResult{}
	}

	merged := make([]*ScoredResult, 0, len(vectorResults)+len(keywordResults))
	byID := make(map[string]*ScoredResult, len(vectorResults))

	for _, vr := range vectorResults {
		r := &ScoredResult{
			Chunk:       vr.Chunk,
			Method:      MethodVector,
			VectorScore: vr.VectorScore,
		}
		merged = append(merged, r)
		byID[vr.Chunk.ID] = r
	}

	var keywordOnly []*ScoredResult
	for _, kr := range keywordResults {
		if existing, ok := byID[kr.Chunk.ID]; ok {
			existing.Method = MethodHybrid
			existing.KeywordScore = kr.KeywordScore
			continue
		}
		keywordOnly = append(keywordOnly, &ScoredResult{
			Chunk:        kr.Chunk,
			Method:       MethodKeyword,
			KeywordScore: kr.KeywordScore,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		si := merged[i].VectorScore.MustGet()
		sj := merged[j].VectorScore.MustGet()
		if si != sj {
			return si > sj
		}
		ki := merged[i].KeywordScore.OrElse(0)
		kj := merged[j].KeywordScore.OrElse(0)
		if ki != kj {
			return ki > kj
		}
		return merged[i].Chunk.ID < merged[j].Chunk.ID
	})

	sort.SliceStable(keywordOnly, func(i, j int) bool {
		si := keywordOnly[i].KeywordScore.MustGet()
		sj := keywordOnly[j].KeywordScore.MustGet()
		if si != sj {
			return si > sj
		}
		return keywordOnly[i].Chunk.ID < keywordOnly[j].Chunk.ID
	})

	merged = append(merged, keywordOnly...)
	if len(merged) > finalLimit {
		merged = merged[:finalLimit]
	}
	return merged
}
