package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

// レシピサンプル検索の標準値。理論チャンクより高い閾値を使い、
// 構造が近いサンプルだけを参照する。
const (
	SampleThreshold   = 0.65
	sampleVectorLimit = 30
	defaultTopK       = 5
)

// ErrNoInput はクエリとスタイルパラメータのどちらも指定されていない場合のエラー
var ErrNoInput = errors.New("recipe: query or style parameters required")

// ErrProprietaryQuery は内部メソッドの構造を尋ねる質問を検出した場合のエラー。
// 呼び出し側は ProprietaryNotice の定型文を応答として使う。
var ErrProprietaryQuery = errors.New("recipe: query asks for proprietary internals")

// Service はスタイルパラメータまたは自由テキストからヘアレシピを生成する
type Service struct {
	retriever *retrieval.Service
	generator Generator
	answerer  Generator
	assembler *Assembler
	logger    *slog.Logger
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

// WithAnswerGenerator は理論Q&A用の生成クライアントを別に設定する。
// 回答は創作性よりも正確さを優先するため、低い temperature のクライアントを使う。
func WithAnswerGenerator(generator Generator) ServiceOption {
	return func(s *Service) {
		if generator != nil {
			s.answerer = generator
		}
	}
}

// WithAssembler はプロンプト組み立てを差し替える
func WithAssembler(assembler *Assembler) ServiceOption {
	return func(s *Service) {
		if assembler != nil {
			s.assembler = assembler
		}
	}
}

// NewService は新しいレシピ生成サービスを作成する
func NewService(retriever *retrieval.Service, generator Generator, opts ...ServiceOption) *Service {
	if retriever == nil {
		panic("recipe.NewService: retriever is nil")
	}
	if generator == nil {
		panic("recipe.NewService: generator is nil")
	}

	svc := &Service{
		retriever: retriever,
		generator: generator,
		answerer:  generator,
		assembler: NewAssembler(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Generate はレシピを生成する。
//
// 処理の流れ:
//  1. 出力言語の確定（指定がなければクエリから判定）
//  2. 検索クエリの確定（自由テキスト優先、なければスタイルパラメータから構築）
//  3. ハイブリッド検索（スタイル起点は高閾値、テキスト起点は標準閾値）
//  4. 性別・長さカテゴリによる絞り込み（スタイル起点のみ）
//  5. プロンプト組み立てと生成
//  6. 秘匿フィルタの適用
//
// 検索が1件もヒットしなくても生成は続行する。
// パラメータ分析だけでもレシピの骨格は組み立てられるからである。
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	query := strings.TrimSpace(params.Query)
	style, hasStyle := params.Style.Get()
	if query == "" && (!hasStyle || style.IsZero()) {
		return nil, ErrNoInput
	}

	if IsProprietaryQuery(query) {
		return nil, ErrProprietaryQuery
	}

	lang := params.Language
	if lang == "" {
		if query != "" {
			lang = DetectLanguage(query)
		} else {
			lang = DefaultLanguage
		}
	}

	topK := params.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	// スタイル起点の検索はサンプル向けの高閾値と広い候補幅を使う
	searchQuery := query
	threshold := retrieval.DefaultThreshold
	vectorLimit := retrieval.DefaultVectorLimit
	styleDriven := false
	if searchQuery == "" {
		searchQuery = style.BuildSearchQuery()
		threshold = SampleThreshold
		vectorLimit = sampleVectorLimit
		styleDriven = true
	}
	searchQuery = NormalizeQuery(searchQuery)

	result, err := s.retriever.Search(ctx, retrieval.Params{
		Query:       searchQuery,
		Threshold:   threshold,
		VectorLimit: vectorLimit,
		FinalLimit:  vectorLimit,
	})
	if err != nil {
		if errors.Is(err, retrieval.ErrDimensionMismatch) {
			return nil, err
		}
		s.logger.Warn("retrieval failed, generating from parameters only",
			"query", searchQuery,
			"error", err,
		)
		result = &retrieval.Result{UsedFallback: true}
	}

	chunks := result.Results
	if styleDriven {
		chunks = filterByStyle(chunks, style)
	}
	if len(chunks) > topK {
		chunks = chunks[:topK]
	}

	prompt := s.assembler.Build(lang, style, chunks)

	text, err := s.generate(ctx, prompt, params.OnFragment)
	if err != nil {
		return nil, fmt.Errorf("generate recipe: %w", err)
	}

	s.logger.Info("recipe generated",
		"language", string(lang),
		"styleDriven", styleDriven,
		"sources", len(chunks),
		"usedFallback", result.UsedFallback,
	)

	return &GenerateResult{
		RecipeText:   Redact(text),
		Language:     lang,
		Sources:      sourcesOf(chunks),
		SourcesUsed:  len(chunks),
		UsedFallback: result.UsedFallback,
	}, nil
}

// Answer は理論に関する質問に検索結果を根拠として回答する
func (s *Service) Answer(ctx context.Context, question string, lang Language) (*AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrNoInput
	}
	if IsProprietaryQuery(question) {
		return nil, ErrProprietaryQuery
	}

	if lang == "" {
		lang = DetectLanguage(question)
	}

	result, err := s.retriever.Search(ctx, retrieval.Params{
		Query: NormalizeQuery(question),
	})
	if err != nil {
		if errors.Is(err, retrieval.ErrDimensionMismatch) {
			return nil, err
		}
		s.logger.Warn("retrieval failed, answering without references",
			"error", err,
		)
		result = &retrieval.Result{UsedFallback: true}
	}

	prompt := s.assembler.BuildAnswer(lang, question, result.Results)

	text, err := s.answerer.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &AnswerResult{
		AnswerText:   Redact(text),
		Language:     lang,
		Sources:      sourcesOf(result.Results),
		SourcesUsed:  len(result.Results),
		UsedFallback: result.UsedFallback,
	}, nil
}

func (s *Service) generate(ctx context.Context, prompt string, onFragment func(string)) (string, error) {
	if onFragment != nil {
		if streamer, ok := s.generator.(StreamingGenerator); ok {
			return streamer.GenerateStream(ctx, prompt, onFragment)
		}
	}
	return s.generator.Generate(ctx, prompt)
}

// filterByStyle は性別と長さカテゴリでレシピサンプルを絞り込む。
// ストア側の述語ではなく取得後の絞り込みで行い、メタデータを持たない
// 理論チャンクは常に通過させる。
func filterByStyle(results []*retrieval.ScoredResult, style StyleParameters) []*retrieval.ScoredResult {
	gender := style.Gender()
	prefix := style.LengthPrefix()

	filtered := make([]*retrieval.ScoredResult, 0, len(results))
	for _, r := range results {
		if r.Chunk.Gender != "" && gender != "" && r.Chunk.Gender != gender {
			continue
		}
		if r.Chunk.SampleCode != "" && prefix != "" && !strings.HasPrefix(r.Chunk.SampleCode, prefix) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func sourcesOf(results []*retrieval.ScoredResult) []Source {
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		src := Source{
			ID:         r.Chunk.ID,
			Title:      r.Chunk.Title,
			SampleCode: r.Chunk.SampleCode,
			Method:     string(r.Method),
		}
		if sim, ok := r.VectorScore.Get(); ok {
			src.Similarity = sim
		}
		sources = append(sources, src)
	}
	return sources
}
