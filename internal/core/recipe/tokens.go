package recipe

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter はプロンプトのトークン数をカウントする
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter は cl100k_base エンコーディングの TokenCounter を作成する
func NewTokenCounter() (*TokenCounter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count はテキストのトークン数を返す
func (tc *TokenCounter) Count(text string) int {
	if tc == nil || tc.encoding == nil {
		return estimateTokens(text)
	}
	return len(tc.encoding.Encode(text, nil, nil))
}

// estimateTokens は正確なカウントができない場合の概算値を返す。
// 英語で約4文字/トークン、日本語・韓国語で約1文字/トークンのため平均3文字とする。
func estimateTokens(text string) int {
	return len([]rune(text)) / 3
}

// truncateToBudget は項目リストをトークン上限に収まる先頭部分に切り詰める。
// 上限の80%を安全マージンとして使用する。
func truncateToBudget(counter *TokenCounter, items []string, maxTokens int) ([]string, bool) {
	const safetyMarginRatio = 0.8

	safeMax := int(float64(maxTokens) * safetyMarginRatio)
	total := 0
	var result []string
	for _, item := range items {
		tokens := counter.Count(item)
		if total+tokens > safeMax {
			return result, true
		}
		result = append(result, item)
		total += tokens
	}
	return result, false
}
