package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit string) error {
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calcx",
		Short: "calcx - keyboard-driven calculator engine",
		Long: `calcx drives a two-operand calculator state machine from key input.

Keys are single characters (digits, . , + - * x / = %) or named keys in
braces: {Enter}, {Backspace}, {Escape}, {F9}.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every transition")

	rootCmd.AddCommand(newKeysCommand())
	rootCmd.AddCommand(newReplCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newTapeCommand())
	rootCmd.AddCommand(newGraphCommand())

	return rootCmd
}
