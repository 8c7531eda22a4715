package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/admin"
	"github.com/evcraddock/hvr-studio/internal/auth"
	"github.com/evcraddock/hvr-studio/internal/logging"
	"github.com/evcraddock/hvr-studio/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP API serving the admin routes and the public site forms. Configuration comes from HVR_* environment variables and the --env-file dotenv file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (overrides HVR_PORT)")

	return cmd
}

func runServe(ctx context.Context, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(s)

	if port != 0 {
		cfg.Port = port
	}

	logger := logging.Setup(os.Stderr, cfg.DevMode)
	logger.Info("store opened", "backend", cfg.Store)

	svc := admin.NewService(s, logger, nil)
	srv := web.NewServer(svc, auth.NewAPIKeyStore(s), logger)
	return srv.ListenAndServe(ctx, cfg.Port)
}
