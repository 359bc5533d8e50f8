package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/hairgator/recipe-rag/internal/core/retrieval"
	"github.com/hairgator/recipe-rag/internal/infra/memory"
	"github.com/hairgator/recipe-rag/internal/infra/openai"
	"github.com/hairgator/recipe-rag/internal/infra/postgres"
	"github.com/hairgator/recipe-rag/internal/platform/config"
	"github.com/hairgator/recipe-rag/internal/platform/database"
)

// ServiceContainer はアプリケーションの依存関係を保持する。
// チャンクストアは PostgreSQL が標準だが、CHUNK_FILE 指定時は
// インメモリストアに切り替わりデータベース接続を行わない。
type ServiceContainer struct {
	RetrievalService *retrieval.Service
	RecipeService    *recipe.Service
	ChunkStore       retrieval.ChunkStore

	logger   *slog.Logger
	database *database.Database
}

type containerOptions struct {
	logger    *slog.Logger
	embedder  retrieval.Embedder
	generator recipe.Generator
	store     retrieval.ChunkStore
}

// ContainerOption は ServiceContainer 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerEmbedder はカスタム Embedder を注入する
func WithContainerEmbedder(embedder retrieval.Embedder) ContainerOption {
	return func(opts *containerOptions) {
		opts.embedder = embedder
	}
}

// WithContainerGenerator は生成クライアントを差し替える
func WithContainerGenerator(generator recipe.Generator) ContainerOption {
	return func(opts *containerOptions) {
		opts.generator = generator
	}
}

// WithContainerStore はチャンクストアを差し替える
func WithContainerStore(store retrieval.ChunkStore) ContainerOption {
	return func(opts *containerOptions) {
		opts.store = store
	}
}

// NewContainer は設定からコンテナを生成する。
func NewContainer(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*ServiceContainer, error) {
	options := containerOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	c := &ServiceContainer{
		logger: options.logger,
	}

	store := options.store
	if store == nil {
		if cfg.ChunkFile != "" {
			memStore := memory.NewStore()
			loaded, err := memStore.LoadFile(cfg.ChunkFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load chunk file: %w", err)
			}
			c.logger.Info("loaded chunks from file",
				"path", cfg.ChunkFile,
				"chunks", loaded,
			)
			store = memStore
		} else {
			db, err := database.New(ctx, database.ConnectionParams{
				Host:     cfg.Database.Host,
				Port:     cfg.Database.Port,
				User:     cfg.Database.User,
				Password: cfg.Database.Password,
				DBName:   cfg.Database.DBName,
				SSLMode:  cfg.Database.SSLMode,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to connect to database: %w", err)
			}
			c.database = db
			store = postgres.NewChunkStore(db.Pool, cfg.OpenAI.EmbeddingDimension)
		}
	}
	c.ChunkStore = store

	embedder := options.embedder
	if embedder == nil {
		embedder = openai.NewEmbedder(cfg.OpenAI.APIKey,
			openai.WithEmbeddingModel(cfg.OpenAI.EmbeddingModel),
			openai.WithEmbeddingDimension(cfg.OpenAI.EmbeddingDimension),
		)
	}

	generator := options.generator
	if generator == nil {
		client, err := openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithModel(cfg.OpenAI.LLMModel),
			openai.WithTemperature(cfg.OpenAI.Temperature),
		)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
		generator = client
	}

	recipeOpts := []recipe.ServiceOption{
		recipe.WithServiceLogger(c.logger),
	}
	if options.generator == nil {
		// 理論Q&Aは正確さ優先で低い temperature を使う
		answerer, err := openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithModel(cfg.OpenAI.LLMModel),
			openai.WithTemperature(cfg.OpenAI.AnswerTemperature),
		)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create answer client: %w", err)
		}
		recipeOpts = append(recipeOpts, recipe.WithAnswerGenerator(answerer))
	}

	c.RetrievalService = retrieval.NewService(store, embedder,
		retrieval.WithServiceLogger(c.logger),
	)
	c.RecipeService = recipe.NewService(c.RetrievalService, generator, recipeOpts...)

	return c, nil
}

// Logger はコンテナのロガーを返す
func (c *ServiceContainer) Logger() *slog.Logger {
	return c.logger
}

// Close は保持しているリソースを解放する
func (c *ServiceContainer) Close() {
	if c.database != nil {
		c.database.Close()
	}
}
