package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/production"
)

func newGraphCommand() *cobra.Command {
	var highlight string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the input-mode graph as Graphviz DOT",
		Example: `  calcx graph --highlight awaiting | dot -Tsvg > modes.svg`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var mode calcx.Mode
			if err := mode.UnmarshalText([]byte(highlight)); err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			fmt.Fprint(cmd.OutOrStdout(), v.ExportDOT(calcx.Transitions(), mode))
			return nil
		},
	}

	cmd.Flags().StringVar(&highlight, "highlight", calcx.ModeEntering.String(), "mode to highlight")

	return cmd
}
