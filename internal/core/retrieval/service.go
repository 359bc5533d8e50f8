package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// デフォルトの検索パラメータ。理論チャンク検索の標準値。
const (
	DefaultThreshold    = 0.60
	DefaultVectorLimit  = 10
	DefaultKeywordLimit = 10
	DefaultFinalLimit   = 5
)

// Embedder はテキストのEmbedding生成インターフェース
type Embedder interface {
	// Embed は単一テキストのEmbeddingを生成する
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension はEmbeddingベクトルの次元数を返す
	Dimension() int
}

// Params はハイブリッド検索のパラメータを表す
type Params struct {
	Query        string  // 検索クエリテキスト
	Threshold    float64 // ベクトル類似度の下限（0 の場合はデフォルト）
	VectorLimit  int     // ベクトル検索の上限
	KeywordLimit int     // キーワード検索の上限
	FinalLimit   int     // マージ後の最終件数
}

// Result はハイブリッド検索の結果を表す
type Result struct {
	Results      []*ScoredResult
	UsedFallback bool // ベクトル検索が寄与せずキーワード検索のみで構成された場合 true
}

// Service はベクトル検索とキーワード検索を組み合わせたハイブリッド検索を提供する
type Service struct {
	vector   *VectorSearcher
	keyword  *KeywordSearcher
	embedder Embedder
	logger   *slog.Logger
}

// ServiceOption は Service のオプション設定
type ServiceOption func(*Service)

// WithServiceLogger は Service にロガーを設定する
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService は新しい検索サービスを作成する
func NewService(store ChunkStore, embedder Embedder, opts ...ServiceOption) *Service {
	if store == nil {
		panic("retrieval.NewService: store is nil")
	}
	if embedder == nil {
		panic("retrieval.NewService: embedder is nil")
	}

	svc := &Service{
		vector:   NewVectorSearcher(store),
		keyword:  NewKeywordSearcher(store),
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Search はクエリに対してベクトル検索とキーワード検索を並行実行し、
// マージ済みの単一ランキングを返す。
//
// 埋め込み生成に失敗した場合はキーワード検索のみに縮退して処理を継続する。
// キーワード検索はベクトル検索の成否にかかわらず常に実行される。
// 類似度閾値によって正当にベクトル結果が空になることがあるため、
// 失敗時のみのフォールバックでは不十分だからである。
func (s *Service) Search(ctx context.Context, params Params) (*Result, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, ErrQueryRequired
	}

	threshold := params.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	vectorLimit := params.VectorLimit
	if vectorLimit <= 0 {
		vectorLimit = DefaultVectorLimit
	}
	keywordLimit := params.KeywordLimit
	if keywordLimit <= 0 {
		keywordLimit = DefaultKeywordLimit
	}
	finalLimit := params.FinalLimit
	if finalLimit <= 0 {
		finalLimit = DefaultFinalLimit
	}

	// クエリのベクトル化。失敗してもリクエスト全体は中断しない。
	embedding, embedErr := s.embedder.Embed(ctx, params.Query)
	if embedErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("embedding unavailable, degrading to keyword-only search",
			"query", params.Query,
			"error", embedErr,
		)
	}

	// ベクトル検索とキーワード検索は互いに独立のため並行実行する
	type vectorOutcome struct {
		results []*ScoredResult
		err     error
	}
	type keywordOutcome struct {
		results []*ScoredResult
		err     error
	}

	vectorCh := make(chan vectorOutcome, 1)
	keywordCh := make(chan keywordOutcome, 1)

	go func() {
		if embedErr != nil {
			vectorCh <- vectorOutcome{results: nil}
			return
		}
		results, err := s.vector.Search(ctx, embedding, threshold, vectorLimit)
		vectorCh <- vectorOutcome{results: results, err: err}
	}()

	go func() {
		results, err := s.keyword.Search(ctx, params.Query, keywordLimit)
		keywordCh <- keywordOutcome{results: results, err: err}
	}()

	vectorRes := <-vectorCh
	keywordRes := <-keywordCh

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// 次元不一致は設定エラーであり縮退対象ではない
	if vectorRes.err != nil {
		if errors.Is(vectorRes.err, ErrDimensionMismatch) {
			return nil, vectorRes.err
		}
		s.logger.Warn("vector search failed, continuing with keyword results",
			"error", vectorRes.err,
		)
		vectorRes.results = nil
	}

	if keywordRes.err != nil {
		// ベクトル結果があればキーワード側の失敗は吸収できる
		if len(vectorRes.results) == 0 {
			return nil, fmt.Errorf("keyword search failed with no vector results: %w", keywordRes.err)
		}
		s.logger.Warn("keyword search failed, continuing with vector results",
			"error", keywordRes.err,
		)
		keywordRes.results = nil
	}

	merged := Merge(vectorRes.results, keywordRes.results, finalLimit)

	usedFallback := embedErr != nil || len(vectorRes.results) == 0
	s.logger.Info("hybrid search completed",
		"vectorHits", len(vectorRes.results),
		"keywordHits", len(keywordRes.results),
		"merged", len(merged),
		"usedFallback", usedFallback,
	)

	return &Result{
		Results:      merged,
		UsedFallback: usedFallback,
	}, nil
}
