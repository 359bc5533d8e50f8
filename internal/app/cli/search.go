package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

// SearchAction はハイブリッド検索コマンドのアクション
func SearchAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("検索クエリを指定してください")
	}

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	result, err := appCtx.Container.RetrievalService.Search(ctx, retrieval.Params{
		Query:      recipe.NormalizeQuery(query),
		Threshold:  cmd.Float64("threshold"),
		FinalLimit: int(cmd.Int("limit")),
	})
	if err != nil {
		slog.Error("検索に失敗しました", "error", err)
		return err
	}

	if len(result.Results) == 0 {
		fmt.Println("該当するチャンクはありませんでした")
		return nil
	}

	for i, r := range result.Results {
		label := r.Chunk.Title
		if r.Chunk.SampleCode != "" {
			label = r.Chunk.SampleCode
		}
		fmt.Printf("[%d] %s (%s) スコア: %.4f\n", i+1, label, r.Method, r.Score())
	}
	if result.UsedFallback {
		fmt.Println("\n※ ベクトル検索が利用できなかったため、キーワード検索の結果のみです")
	}

	return nil
}
