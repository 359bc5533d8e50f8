package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

// ChunkStore は retrieval.ChunkStore を実装する PostgreSQL リポジトリ。
// ベクトル検索は pgvector の cosine 距離演算子を使う。
type ChunkStore struct {
	pool      *pgxpool.Pool
	dimension int
}

// NewChunkStore は新しい ChunkStore を返す。
// dimension は chunks テーブルの embedding 列の次元と一致していなければならない。
func NewChunkStore(pool *pgxpool.Pool, dimension int) *ChunkStore {
	if pool == nil {
		panic("postgres.NewChunkStore: pool is nil")
	}
	return &ChunkStore{pool: pool, dimension: dimension}
}

var _ retrieval.ChunkStore = (*ChunkStore)(nil)

const chunkColumns = `id, title, content, content_ko, keywords, category, importance, sample_code, gender`

// VectorQuery は cosine 類似度が threshold 以上のチャンクを類似度の降順で返す
func (s *ChunkStore) VectorQuery(ctx context.Context, vector []float32, threshold float64, limit int) ([]*retrieval.VectorMatch, error) {
	if s.dimension > 0 && len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, store expects %d",
			retrieval.ErrDimensionMismatch, len(vector), s.dimension)
	}

	query := fmt.Sprintf(`
		SELECT %s, 1 - (embedding <=> $1) AS similarity
		FROM chunks
		WHERE embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) >= $2
		ORDER BY embedding <=> $1, id
		LIMIT $3`, chunkColumns)

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(vector), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run vector query: %w", err)
	}
	defer rows.Close()

	var matches []*retrieval.VectorMatch
	for rows.Next() {
		chunk, similarity, err := scanChunkWithSimilarity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vector match: %w", err)
		}
		matches = append(matches, &retrieval.VectorMatch{Chunk: chunk, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vector matches: %w", err)
	}
	return matches, nil
}

// likeEscaper はトークン中のLIKEメタ文字をリテラルとして扱うためのエスケープ
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikeTokens(tokens []string) []string {
	escaped := make([]string, len(tokens))
	for i, token := range tokens {
		escaped[i] = likeEscaper.Replace(token)
	}
	return escaped
}

// KeywordQuery はいずれかのトークンに部分一致するチャンクを返す。
// スコアリングは呼び出し側で行うため、ここでは候補の列挙のみを担当する。
func (s *ChunkStore) KeywordQuery(ctx context.Context, tokens []string, candidateLimit int) ([]*retrieval.Chunk, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM chunks
		WHERE EXISTS (
			SELECT 1 FROM unnest($1::text[]) AS t(token)
			WHERE title ILIKE '%%' || t.token || '%%'
			   OR content ILIKE '%%' || t.token || '%%'
			   OR content_ko ILIKE '%%' || t.token || '%%'
			   OR array_to_string(keywords, ' ') ILIKE '%%' || t.token || '%%'
		)
		ORDER BY id
		LIMIT $2`, chunkColumns)

	rows, err := s.pool.Query(ctx, query, escapeLikeTokens(tokens), candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to run keyword query: %w", err)
	}
	defer rows.Close()

	var chunks []*retrieval.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan keyword candidate: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keyword candidates: %w", err)
	}
	return chunks, nil
}

// Upsert はチャンクを挿入または更新する。オフラインの取り込み処理から使う。
func (s *ChunkStore) Upsert(ctx context.Context, chunk *retrieval.Chunk) error {
	if s.dimension > 0 && len(chunk.Embedding) > 0 && len(chunk.Embedding) != s.dimension {
		return fmt.Errorf("%w: chunk %s has %d dimensions, store expects %d",
			retrieval.ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), s.dimension)
	}

	query := `
		INSERT INTO chunks (id, title, content, content_ko, keywords, category, importance, sample_code, gender, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			content_ko = EXCLUDED.content_ko,
			keywords = EXCLUDED.keywords,
			category = EXCLUDED.category,
			importance = EXCLUDED.importance,
			sample_code = EXCLUDED.sample_code,
			gender = EXCLUDED.gender,
			embedding = EXCLUDED.embedding`

	var embedding any
	if len(chunk.Embedding) > 0 {
		embedding = pgvector.NewVector(chunk.Embedding)
	}

	_, err := s.pool.Exec(ctx, query,
		chunk.ID,
		chunk.Title,
		chunk.Text,
		chunk.TextKo,
		chunk.Keywords,
		chunk.Category,
		chunk.Importance,
		chunk.SampleCode,
		chunk.Gender,
		embedding,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", chunk.ID, err)
	}
	return nil
}

func scanChunk(rows pgx.Rows) (*retrieval.Chunk, error) {
	var chunk retrieval.Chunk
	err := rows.Scan(
		&chunk.ID,
		&chunk.Title,
		&chunk.Text,
		&chunk.TextKo,
		&chunk.Keywords,
		&chunk.Category,
		&chunk.Importance,
		&chunk.SampleCode,
		&chunk.Gender,
	)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

func scanChunkWithSimilarity(rows pgx.Rows) (*retrieval.Chunk, float64, error) {
	var chunk retrieval.Chunk
	var similarity float64
	err := rows.Scan(
		&chunk.ID,
		&chunk.Title,
		&chunk.Text,
		&chunk.TextKo,
		&chunk.Keywords,
		&chunk.Category,
		&chunk.Importance,
		&chunk.SampleCode,
		&chunk.Gender,
		&similarity,
	)
	if err != nil {
		return nil, 0, err
	}
	return &chunk, similarity, nil
}
