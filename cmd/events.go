package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/justinmayhew/msh/core/logger"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the shell's session event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report [file]",
	Short: "Summarize an event log: what ran, how often, what failed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		var in io.ReadCloser
		if len(args) == 1 {
			fd, err := os.Open(args[0])
			if err != nil {
				return err
			}
			in = fd
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.LogFile == "" {
				return errors.New("no log_file configured; pass a log explicitly")
			}
			fd, err := cfg.ReadSessionLog()
			if err != nil {
				return err
			}
			in = fd
		}
		defer in.Close()

		report := logger.NewReport()
		if err := logger.ReadJSONLines(in, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
}
