package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/config"
	"github.com/comalice/calcx/internal/keymap"
	"github.com/comalice/calcx/internal/telemetry"
)

// session is the per-command wiring of config, logging, keys and metrics.
type session struct {
	cfg     config.Config
	logger  zerolog.Logger
	keymap  *keymap.Keymap
	metrics *telemetry.Metrics
}

func newSession() (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	km, err := keymap.New(cfg.Keymap.Bindings)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	metrics, err := telemetry.NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	return &session{cfg: cfg, logger: logger, keymap: km, metrics: metrics}, nil
}

func (s *session) newEngine(opts ...calcx.Option) *calcx.Engine {
	base := []calcx.Option{
		calcx.WithLogger(telemetry.ComponentLogger(s.logger, "engine")),
		calcx.WithObserver(s.metrics),
	}
	return calcx.New(append(base, opts...)...)
}

// feed dispatches typed input, rendering after each key when trace is set.
func (s *session) feed(e *calcx.Engine, input string, w io.Writer, trace bool) (calcx.Snapshot, error) {
	keys, err := keymap.Split(input)
	if err != nil {
		return e.Snapshot(), err
	}
	for _, key := range keys {
		a, err := s.keymap.Lookup(key)
		if err != nil {
			return e.Snapshot(), err
		}
		snap, err := e.Dispatch(a)
		if err != nil {
			return snap, err
		}
		if trace {
			fmt.Fprintf(w, "%-12s", key)
			render(w, snap)
		}
	}
	return e.Snapshot(), nil
}

const displayWidth = 16

// render paints a snapshot as "expression | display".
func render(w io.Writer, snap calcx.Snapshot) {
	fmt.Fprintf(w, "%*s | %*s\n", displayWidth, snap.Expression, displayWidth, snap.Display)
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return true
	}
	return false
}
