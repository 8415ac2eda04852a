package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/decisiontree/internal/cli"
	httpAdapter "github.com/aretw0/decisiontree/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the skill HTTP endpoint",
	Long: `Serves the skill over HTTP. The voice platform posts requests to /skill;
/health, /outcomes, /sessions and /metrics are available for operators.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Addr = v
		}
		if v, _ := cmd.Flags().GetString("store"); v != "" {
			cfg.Store.Driver = v
		}
		if v, _ := cmd.Flags().GetString("prompt-style"); v != "" {
			cfg.PromptStyle = v
		}
		debug, _ := cmd.Flags().GetBool("debug")

		rt, err := cli.Build(cfg, logger, cli.BuildOptions{Debug: debug})
		if err != nil {
			return err
		}
		defer rt.Close()

		opts := []httpAdapter.Option{
			httpAdapter.WithOutcomes(rt.Skill.Outcomes()),
			httpAdapter.WithSessions(rt.Sessions),
			httpAdapter.WithHealthCheck(rt.Health),
			httpAdapter.WithLogger(logger),
		}
		if rt.Metrics != nil {
			opts = append(opts, httpAdapter.WithMetrics(rt.Metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           httpAdapter.NewHandler(rt.Skill, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Decision Tree server", "addr", srv.Addr, "store", cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("Decision Tree server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
	serveCmd.Flags().String("store", "", "Session store: memory, file or redis")
	serveCmd.Flags().String("prompt-style", "", "Disambiguation prompts: legacy or natural")
}
