package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/nexusshelf/internal/logging"
	"github.com/blackwell-systems/nexusshelf/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `Serve the catalog as a JSON API for the signed-in user.

Routes:
  GET    /health
  GET    /v1/books?q=&status=
  POST   /v1/books             create (file_name required; "suggest": true asks for a category)
  GET    /v1/books/:id
  PUT    /v1/books/:id
  DELETE /v1/books/:id
  POST   /v1/reload
  GET    /v1/stats
  POST   /v1/decode            {"file_name": "..."}
  POST   /v1/suggest           {"title": "..."}

Sign in with 'nexusshelf login' first. The server stops on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				cfg.Serve.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}

			l, err := logging.New(cfg.Log, logging.Options{Verbose: flagVerbose, Stderr: true})
			if err != nil {
				return err
			}
			logger = l
			if !flagVerbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx := cmd.Context()
			ctrl, cleanup, err := openController(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := server.New(ctrl, newSuggester(ctx), logger)
			addr := cfg.Serve.Addr()
			fmt.Printf("Serving %d records for %s on http://%s\n",
				len(ctrl.State().Books), ctrl.State().CurrentUser.FullName, addr)
			logger.Info("serving", zap.String("addr", addr), zap.String("backend", cfg.Backend.Kind))
			return server.ListenAndServe(ctx, addr, srv.Handler(), logger)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default serve.host)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default serve.port)")
	return cmd
}
