package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hairgator/recipe-rag/internal/interface/httpapi"
)

// ServerStartAction はHTTPサーバを起動するコマンドのアクション
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	port := int(cmd.Int("port"))
	if port <= 0 {
		port = appCtx.Config.HTTP.Port
	}

	server := httpapi.NewServer(port,
		appCtx.Container.RetrievalService,
		appCtx.Container.RecipeService,
		httpapi.WithServerLogger(appCtx.Logger()),
	)
	return server.Run(ctx)
}
