package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newKeysCommand() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "keys <input>...",
		Short: "Feed key input and print the final display",
		Example: `  # Chained evaluation
  calcx keys '5+3x2='

  # Named keys and a step-by-step trace
  calcx keys --trace '12{Backspace}3{Enter}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			e := s.newEngine()
			out := cmd.OutOrStdout()
			snap, err := s.feed(e, strings.Join(args, ""), out, trace || s.cfg.Display.Trace)
			if err != nil {
				return err
			}
			render(out, snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the display after every key")

	return cmd
}
