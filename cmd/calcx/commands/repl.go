package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newReplCommand() *cobra.Command {
	var (
		trace       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read key input line by line and repaint after each line",
		Long: `Read key input from stdin. Each line is fed to the same engine and the
display is repainted afterwards. "quit", "exit" or end of input stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				s.cfg.Metrics.Addr = metricsAddr
			}

			ctx := cmd.Context()
			if s.cfg.Metrics.Addr != "" && s.metrics.Enabled() {
				stop, err := serveMetrics(ctx, s)
				if err != nil {
					return err
				}
				defer stop()
			}

			e := s.newEngine()
			out := cmd.OutOrStdout()
			render(out, e.Snapshot())

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := ctx.Err(); err != nil {
					return err
				}
				line := scanner.Text()
				if isQuit(line) {
					return nil
				}
				snap, err := s.feed(e, line, out, trace || s.cfg.Display.Trace)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				}
				render(out, snap)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the display after every key")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (requires metrics.enabled)")

	return cmd
}

// serveMetrics exposes /metrics until the returned stop function is called.
func serveMetrics(ctx context.Context, s *session) (func(), error) {
	ln, err := net.Listen("tcp", s.cfg.Metrics.Addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
