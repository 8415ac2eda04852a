package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/decisiontree/internal/cli"
	"github.com/aretw0/decisiontree/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect recorded sessions",
	Long:  `List, inspect, and remove the session audit records kept by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd)
		if err != nil {
			return err
		}
		sessions, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		fmt.Fprintln(out, "Sessions:")
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the record of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		store, err := getStore(cmd)
		if err != nil {
			return err
		}

		rec, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("load session '%s': %w", sessionID, err)
		}

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm [session-id]...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("give at least one session id, or --all")
		}

		store, err := getStore(cmd)
		if err != nil {
			return err
		}
		if all {
			if args, err = store.List(cmd.Context()); err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
		}

		var errs []error
		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				errs = append(errs, fmt.Errorf("remove '%s': %w", sessionID, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)

	sessionCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis")
	sessionRmCmd.Flags().Bool("all", false, "Remove every recorded session")
}

func getStore(cmd *cobra.Command) (ports.SessionStore, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Driver = v
	}
	store, _, err := cli.OpenStore(cfg.Store)
	return store, err
}
