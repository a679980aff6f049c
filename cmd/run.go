package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/mindspark/internal/app"
	"github.com/abhisek/mindspark/internal/auth"
	"github.com/abhisek/mindspark/internal/gateway"
	"github.com/abhisek/mindspark/internal/llm"
	"github.com/abhisek/mindspark/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := openLogger(cmd)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	var (
		bucket    store.Bucket
		eventRepo store.EventRepo
	)
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		bucket = store.NewMemoryBucket()
		logger.Info("running with an in-memory store")
	} else {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		bucket = st.Bucket()
		eventRepo = st.EventRepo()
	}

	authService := auth.NewService(bucket, auth.WithLogger(logger))
	session, err := authService.CurrentUser(ctx)
	if err != nil {
		logger.Warn("could not restore session", "error", err)
		session = nil
	}

	opts := app.Options{
		Auth:    authService,
		Logger:  logger,
		Session: session,
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, eventRepo, logger, llm.WithMockResponder(gateway.DemoResponder))
	if err != nil {
		logger.Warn("LLM provider not configured", "error", err)
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	} else {
		logger.Info("LLM provider ready", "provider", cfg.Provider)
		opts.Gateway = gateway.New(provider, gateway.ConfigFromEnv(cfg.Provider), logger)
		opts.CallTimeout = cfg.Timeout
	}

	return app.Run(opts)
}
