package cmd

import (
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/justinmayhew/msh/core/config"
)

// initCmd writes a starter configuration for editing.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration into the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := configDir()
		if err != nil {
			return err
		}

		logger := log.New(cmd.ErrOrStderr(), "", 0)
		return config.Initialize(afero.NewOsFs(), dir, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
