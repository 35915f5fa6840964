package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/justinmayhew/msh/core"
)

// builtinsCmd lists the commands the shell runs without spawning a process.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell's builtin commands.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		var names []string
		for name := range core.AllBuiltins {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, v := range names {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
