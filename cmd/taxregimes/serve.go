package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/internal/logging"
	"github.com/taxregimes/taxregimes/internal/server"
	"github.com/taxregimes/taxregimes/internal/tracing"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Settings come from TAXREGIMES_* environment variables,
optionally loaded from a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				cfg.LogLevel = "debug"
			}

			logger, err := logging.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			rules := domain.DefaultTaxRules()
			rulesFile, _ := cmd.Flags().GetString("rules")
			if rulesFile == "" {
				rulesFile = cfg.RulesFile
			}
			if rulesFile != "" {
				if rules, err = config.LoadRulesFromFile(rulesFile); err != nil {
					return err
				}
				logger.Info("Loaded tax rules", zap.String("file", rulesFile), zap.Int("data_year", rules.Metadata.DataYear))
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			tp, err := tracing.Init(ctx, tracing.Config{
				ServiceName:    cfg.ServiceName,
				ServiceVersion: version,
				Endpoint:       cfg.OTLPEndpoint,
			})
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, done := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer done()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Failed to flush traces", zap.Error(err))
				}
			}()

			srv := server.New(cfg, rules, server.WithLogger(logger), server.WithTracer(tp.Tracer))
			if err := srv.ListenAndServe(ctx); err != nil {
				logger.Error("Server stopped with error", zap.Error(err))
				return err
			}
			logger.Info("Server shutdown gracefully")
			return nil
		},
	}
	cmd.Flags().String("env-file", ".env", "Optional .env file with server settings")
	return cmd
}
