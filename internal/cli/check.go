package cli

import (
	"github.com/spf13/cobra"

	"github.com/lumafold/snapsort/internal/check"
	"github.com/lumafold/snapsort/internal/logging"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the environment without organizing anything",
	Long: `Check reports the state of the config file, each configured source
folder, the destination, and terminal color support. It never moves
or copies files.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd.Flags(), true)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	check.RunCheck(cfg, log)
	return nil
}
