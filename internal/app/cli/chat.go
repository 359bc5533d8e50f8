package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
)

// ChatAction は理論Q&Aコマンドのアクション
func ChatAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	question := cmd.Args().First()
	if question == "" {
		return fmt.Errorf("質問文を指定してください")
	}

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	var lang recipe.Language
	if s := cmd.String("lang"); s != "" {
		lang = recipe.ParseLanguage(s)
	}
	result, err := appCtx.Container.RecipeService.Answer(ctx, question, lang)
	if err != nil {
		if errors.Is(err, recipe.ErrProprietaryQuery) {
			if lang == "" {
				lang = recipe.DetectLanguage(question)
			}
			fmt.Println(recipe.ProprietaryNotice(lang))
			return nil
		}
		slog.Error("質問応答に失敗しました", "error", err)
		return err
	}

	fmt.Println(result.AnswerText)

	if cmd.Bool("show-sources") && len(result.Sources) > 0 {
		fmt.Println("\n--- 参照ソース ---")
		for i, source := range result.Sources {
			label := source.Title
			if label == "" {
				label = source.ID
			}
			fmt.Printf("[%d] %s (%s) スコア: %.4f\n", i+1, label, source.Method, source.Similarity)
		}
	}

	return nil
}
