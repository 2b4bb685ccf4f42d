package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comalice/calcx/internal/keymap"
	"github.com/comalice/calcx/internal/production"
)

func newTapeCommand() *cobra.Command {
	var (
		dir    string
		format string
		expect bool
	)

	cmd := &cobra.Command{
		Use:   "tape <name> <input>...",
		Short: "Write a tape fixture from key input",
		Example: `  # Record the expected result alongside the keys
  calcx tape --expect --dir testdata chain '5+3x2='`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			ext := strings.ToLower(format)
			var store production.TapeStore
			switch ext {
			case "yaml", "yml":
				ext = "yaml"
				store, err = production.NewYAMLTapeStore(dir)
			case "json":
				store, err = production.NewJSONTapeStore(dir)
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			if err != nil {
				return err
			}

			keys, err := keymap.Split(strings.Join(args[1:], ""))
			if err != nil {
				return err
			}
			tape := &production.Tape{Name: args[0], Keys: keys}

			ctx := cmd.Context()
			if expect {
				snap, err := production.Replay(ctx, s.newEngine(), s.keymap, tape)
				if err != nil {
					return err
				}
				tape.Expect = &production.Expectation{Display: snap.Display, Expression: snap.Expression}
			}

			if err := store.Save(ctx, tape); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", filepath.Join(dir, tape.Name+"."+ext), tape.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write the tape into")
	cmd.Flags().StringVar(&format, "format", "yaml", "tape format: yaml or json")
	cmd.Flags().BoolVar(&expect, "expect", false, "store the replayed display as the expectation")

	return cmd
}
