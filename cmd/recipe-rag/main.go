package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	appcli "github.com/hairgator/recipe-rag/internal/app/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "recipe-rag",
		Usage: "ヘアスタイル理論検索およびレシピ生成システム",
		Commands: []*cli.Command{
			{
				Name:      "recipe",
				Usage:     "スタイルパラメータまたは自由テキストからレシピを生成",
				ArgsUsage: "[クエリテキスト]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "length",
						Usage: "長さカテゴリ (例: C Length)",
					},
					&cli.StringFlag{
						Name:  "form",
						Usage: "カット形状 (例: L(Layer))",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "カットカテゴリ (例: Women's Cut)",
					},
					&cli.StringFlag{
						Name:  "volume",
						Usage: "ボリュームゾーン (Low/Medium/High)",
					},
					&cli.StringFlag{
						Name:  "fringe",
						Usage: "前髪タイプ (例: See-through Bang)",
					},
					&cli.StringFlag{
						Name:  "section",
						Usage: "主セクション",
					},
					&cli.StringFlag{
						Name:  "lifting",
						Usage: "リフティング角度コード（スペース区切り、例: \"L2 L4\"）",
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "出力言語 (ko/en/ja/vi、省略時はクエリから判定)",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "参照するチャンク数",
					},
					&cli.BoolFlag{
						Name:  "stream",
						Usage: "生成途中の断片を逐次表示",
					},
					&cli.BoolFlag{
						Name:  "show-sources",
						Usage: "参照ソースを表示",
					},
				},
				Action: appcli.RecipeGenerateAction,
			},
			{
				Name:      "chat",
				Usage:     "ヘア理論に関する質問に回答",
				ArgsUsage: "<質問文>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "出力言語 (ko/en/ja/vi、省略時は質問文から判定)",
					},
					&cli.BoolFlag{
						Name:  "show-sources",
						Usage: "参照ソースを表示",
					},
				},
				Action: appcli.ChatAction,
			},
			{
				Name:      "search",
				Usage:     "理論チャンクをハイブリッド検索",
				ArgsUsage: "<検索クエリ>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "類似度の下限（省略時は0.60）",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "最終件数（省略時は5）",
					},
				},
				Action: appcli.SearchAction,
			},
			{
				Name:  "chunk",
				Usage: "チャンク管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "load",
						Usage: "JSONファイルをPostgreSQLへ取り込み",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.StringFlag{
								Name:     "file",
								Usage:    "チャンクJSONファイルパス",
								Required: true,
							},
						},
						Action: appcli.ChunkLoadAction,
					},
				},
			},
			{
				Name:  "server",
				Usage: "サーバ関連コマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "HTTPサーバを起動",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.IntFlag{
								Name:  "port",
								Usage: "HTTPポート（省略時は環境変数またはデフォルトの8080）",
							},
						},
						Action: appcli.ServerStartAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
