package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
)

// RecipeGenerateAction はレシピ生成コマンドのアクション
func RecipeGenerateAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))

	style := recipe.StyleParameters{
		LengthCategory: cmd.String("length"),
		CutForm:        cmd.String("form"),
		CutCategory:    cmd.String("category"),
		VolumeZone:     cmd.String("volume"),
		FringeType:     cmd.String("fringe"),
		SectionPrimary: cmd.String("section"),
	}
	if lifting := cmd.String("lifting"); lifting != "" {
		style.LiftingRange = strings.Fields(lifting)
	}

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	params := recipe.GenerateParams{
		Query: query,
		TopK:  int(cmd.Int("top-k")),
	}
	if lang := cmd.String("lang"); lang != "" {
		params.Language = recipe.ParseLanguage(lang)
	}
	if !style.IsZero() {
		params.Style = mo.Some(style)
	}
	if cmd.Bool("stream") {
		params.OnFragment = func(fragment string) {
			fmt.Print(fragment)
		}
	}

	result, err := appCtx.Container.RecipeService.Generate(ctx, params)
	if err != nil {
		if errors.Is(err, recipe.ErrProprietaryQuery) {
			lang := params.Language
			if lang == "" {
				lang = recipe.DetectLanguage(query)
			}
			fmt.Println(recipe.ProprietaryNotice(lang))
			return nil
		}
		slog.Error("レシピ生成に失敗しました", "error", err)
		return err
	}

	if cmd.Bool("stream") {
		fmt.Println()
	} else {
		fmt.Println(result.RecipeText)
	}

	if cmd.Bool("show-sources") && len(result.Sources) > 0 {
		fmt.Println("\n--- 参照ソース ---")
		for i, source := range result.Sources {
			label := source.SampleCode
			if label == "" {
				label = source.Title
			}
			fmt.Printf("[%d] %s (%s) スコア: %.4f\n", i+1, label, source.Method, source.Similarity)
		}
	}

	return nil
}
