package commands

import (
	"github.com/spf13/cobra"

	"github.com/comalice/calcx/internal/production"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tape-file>...",
		Short: "Replay tape fixtures and check their expected display",
		Example: `  calcx run testdata/chain.yaml testdata/divide.json`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			for _, path := range args {
				tape, err := production.OpenTape(ctx, path)
				if err != nil {
					return err
				}
				log := s.logger.With().Str("tape", tape.Name).Logger()

				snap, err := production.Replay(ctx, s.newEngine(), s.keymap, tape)
				render(out, snap)
				if err != nil {
					return err
				}
				log.Debug().Int("keys", len(tape.Keys)).Msg("tape passed")
			}
			return nil
		},
	}

	return cmd
}
