package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hairgator/recipe-rag/internal/infra/memory"
	"github.com/hairgator/recipe-rag/internal/infra/postgres"
	"github.com/hairgator/recipe-rag/internal/platform/config"
	"github.com/hairgator/recipe-rag/internal/platform/database"
)

// ChunkLoadAction はチャンクのJSONファイルをPostgreSQLへ取り込むコマンドのアクション
func ChunkLoadAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	file := cmd.String("file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	chunks, err := memory.ParseChunkFile(file)
	if err != nil {
		return err
	}

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("データベース接続に失敗: %w", err)
	}
	defer db.Close()

	store := postgres.NewChunkStore(db.Pool, cfg.OpenAI.EmbeddingDimension)
	for _, chunk := range chunks {
		if err := store.Upsert(ctx, chunk); err != nil {
			return err
		}
	}

	slog.Info("チャンクの取り込みが完了しました",
		"file", file,
		"chunks", len(chunks),
	)
	return nil
}
