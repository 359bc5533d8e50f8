package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

// Store は retrieval.ChunkStore のインメモリ実装。
// テストとデータベースなしのローカル実行に使う。
type Store struct {
	mu     sync.RWMutex
	chunks []*retrieval.Chunk
}

// NewStore は空の Store を作成する
func NewStore() *Store {
	return &Store{}
}

var _ retrieval.ChunkStore = (*Store)(nil)

// Add はチャンクを追加する。同一IDの既存チャンクは置き換える。
func (s *Store) Add(chunks ...*retrieval.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		replaced := false
		for i, existing := range s.chunks {
			if existing.ID == chunk.ID {
				s.chunks[i] = chunk
				replaced = true
				break
			}
		}
		if !replaced {
			s.chunks = append(s.chunks, chunk)
		}
	}
}

// Len は保持しているチャンク数を返す
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// LoadFile はJSONファイルからチャンクを読み込んで追加する
func (s *Store) LoadFile(path string) (int, error) {
	chunks, err := ParseChunkFile(path)
	if err != nil {
		return 0, err
	}
	s.Add(chunks...)
	return len(chunks), nil
}

// ParseChunkFile はチャンクのJSONファイルを読み込む。
// PostgreSQLへの取り込みとインメモリストアの両方で同じ形式を使う。
func ParseChunkFile(path string) ([]*retrieval.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk file: %w", err)
	}

	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse chunk file: %w", err)
	}

	chunks := make([]*retrieval.Chunk, 0, len(records))
	for _, rec := range records {
		chunks = append(chunks, rec.toChunk())
	}
	return chunks, nil
}

// VectorQuery は cosine 類似度が threshold 以上のチャンクを類似度の降順で返す
func (s *Store) VectorQuery(ctx context.Context, vector []float32, threshold float64, limit int) ([]*retrieval.VectorMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*retrieval.VectorMatch
	for _, chunk := range s.chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		if len(chunk.Embedding) != len(vector) {
			return nil, fmt.Errorf("%w: chunk %s has %d dimensions, query has %d",
				retrieval.ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), len(vector))
		}
		similarity := cosineSimilarity(vector, chunk.Embedding)
		if similarity >= threshold {
			matches = append(matches, &retrieval.VectorMatch{Chunk: chunk, Similarity: similarity})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Chunk.ID < matches[j].Chunk.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// KeywordQuery はいずれかのトークンに部分一致するチャンクをID順で返す
func (s *Store) KeywordQuery(ctx context.Context, tokens []string, candidateLimit int) ([]*retrieval.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*retrieval.Chunk
	for _, chunk := range s.chunks {
		haystack := strings.ToLower(strings.Join([]string{
			chunk.Title,
			chunk.Text,
			chunk.TextKo,
			strings.Join(chunk.Keywords, " "),
		}, " "))

		for _, token := range tokens {
			if strings.Contains(haystack, strings.ToLower(token)) {
				candidates = append(candidates, chunk)
				break
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	if candidateLimit > 0 && len(candidates) > candidateLimit {
		candidates = candidates[:candidateLimit]
	}
	return candidates, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// chunkRecord はチャンクファイルのJSON表現
type chunkRecord struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ContentKo  string    `json:"content_ko"`
	Keywords   []string  `json:"keywords"`
	Category   string    `json:"category"`
	Importance int       `json:"importance"`
	SampleCode string    `json:"sample_code"`
	Gender     string    `json:"gender"`
	Embedding  []float32 `json:"embedding"`
}

func (r chunkRecord) toChunk() *retrieval.Chunk {
	return &retrieval.Chunk{
		ID:         r.ID,
		Title:      r.Title,
		Text:       r.Content,
		TextKo:     r.ContentKo,
		Keywords:   r.Keywords,
		Category:   r.Category,
		Importance: r.Importance,
		SampleCode: r.SampleCode,
		Gender:     r.Gender,
		Embedding:  r.Embedding,
	}
}
