package main

import (
	"github.com/aretw0/decisiontree/internal/cli"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Talk to the skill in the terminal",
	Long: `Simulates the voice platform on the console. Type your answers; they are
resolved against the built-in synonym catalog the way the platform would.
Press Ctrl+D to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		sessionID, _ := cmd.Flags().GetString("session")
		debug, _ := cmd.Flags().GetBool("debug")
		if v, _ := cmd.Flags().GetString("prompt-style"); v != "" {
			cfg.PromptStyle = v
		}

		cfg.Metrics = false
		rt, err := cli.Build(cfg, logger, cli.BuildOptions{Debug: debug})
		if err != nil {
			return err
		}
		defer rt.Close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		_, err = cli.Ask(sigCtx, rt.Skill, cmd.InOrStdin(), cmd.OutOrStdout(), cli.AskOptions{
			Headless:  headless,
			SessionID: sessionID,
		})
		if sigCtx.Signal() != nil {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Bool("headless", false, "Plain output: no banner or markdown rendering")
	askCmd.Flags().String("session", "", "Session ID to record the dialog under (default: random)")
	askCmd.Flags().String("prompt-style", "", "Disambiguation prompts: legacy or natural")
}
