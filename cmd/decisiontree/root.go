package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/decisiontree/internal/config"
	"github.com/aretw0/decisiontree/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "decisiontree",
	Short: "Decision Tree recommends a career from four questions",
	Long: `Decision Tree is a voice skill that asks about your preferred species,
blood tolerance, personality and salary importance, then recommends a job.

Run it as an HTTP skill endpoint (serve), as an MCP server (mcp), or try the
dialog in the terminal (ask).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (env: DECISIONTREE_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("table", "", "Path to an outcome table YAML file (default: built-in table)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every dialog event")
}

// loadConfig resolves configuration from file, environment and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	if v, _ := cmd.Flags().GetString("table"); v != "" {
		cfg.TablePath = v
	}
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(level, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
