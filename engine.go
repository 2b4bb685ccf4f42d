package calcx

import (
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// Snapshot is what a renderer needs to paint the calculator after an action.
type Snapshot struct {
	Display    string `json:"display" yaml:"display"`
	Expression string `json:"expression" yaml:"expression"`
	Mode       Mode   `json:"mode" yaml:"mode"`
}

// Failed reports whether the snapshot shows the error state.
func (s Snapshot) Failed() bool {
	return s.Mode == ModeError
}

// Engine is the calculator input state machine. It is not safe for
// concurrent use; actions must be delivered one at a time.
type Engine struct {
	display    string
	first      float64
	hasFirst   bool
	op         Operator
	awaiting   bool
	expression string
	failed     bool

	logger    zerolog.Logger
	observers []Observer
}

// Observer is notified after every dispatched action, including actions
// that left the state unchanged.
type Observer interface {
	Observe(action Action, snap Snapshot)
}

//
// Public API
//

// New returns an engine in the cleared configuration.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e
}

// Snapshot returns the current display state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:    e.display,
		Expression: e.expression,
		Mode:       e.Mode(),
	}
}

// Mode derives the input mode from the current state.
func (e *Engine) Mode() Mode {
	switch {
	case e.failed:
		return ModeError
	case e.awaiting:
		return ModeAwaiting
	case e.op != OpNone:
		return ModeOperand
	default:
		return ModeEntering
	}
}

// Dispatch routes an action to its entry point and returns the resulting
// snapshot. Only malformed actions produce an error; arithmetic failures
// are reported through the snapshot.
func (e *Engine) Dispatch(a Action) (Snapshot, error) {
	if err := a.Validate(); err != nil {
		return e.Snapshot(), err
	}

	switch a.Kind {
	case KindDigit:
		e.InputDigit(a.Digit)
	case KindDecimal:
		e.InputDecimal()
	case KindOperator:
		e.ChooseOperator(a.Operator)
	case KindEquals:
		e.Evaluate()
	case KindClear:
		e.Clear()
	case KindDelete:
		e.DeleteLast()
	case KindPercent:
		e.Percent()
	case KindToggleSign:
		e.ToggleSign()
	}

	snap := e.Snapshot()
	e.logger.Debug().
		Stringer("action", a).
		Str("display", snap.Display).
		Str("expression", snap.Expression).
		Stringer("mode", snap.Mode).
		Msg("action applied")
	for _, o := range e.observers {
		o.Observe(a, snap)
	}
	return snap, nil
}

// DispatchAll applies actions in order, stopping at the first malformed one.
func (e *Engine) DispatchAll(actions []Action) (Snapshot, error) {
	for _, a := range actions {
		if _, err := e.Dispatch(a); err != nil {
			return e.Snapshot(), err
		}
	}
	return e.Snapshot(), nil
}

// Clear resets to the initial configuration, including out of the error state.
func (e *Engine) Clear() {
	e.reset()
}

// InputDigit types d into the value in progress. Leading zeros collapse.
func (e *Engine) InputDigit(d Digit) {
	if e.failed || !d.Valid() {
		return
	}
	if e.awaiting {
		e.display = d.String()
		e.awaiting = false
		return
	}
	if e.display == "0" {
		e.display = d.String()
		return
	}
	e.display += d.String()
}

// InputDecimal adds a decimal point unless one is already present.
func (e *Engine) InputDecimal() {
	if e.failed {
		return
	}
	if e.awaiting {
		e.display = "0."
		e.awaiting = false
		return
	}
	if !strings.Contains(e.display, ".") {
		e.display += "."
	}
}

// ToggleSign flips the sign of the value in progress. Zero has no sign.
func (e *Engine) ToggleSign() {
	if e.failed || e.display == "0" {
		return
	}
	if rest, ok := strings.CutPrefix(e.display, "-"); ok {
		e.display = rest
		return
	}
	e.display = "-" + e.display
}

// Percent divides the value in progress by 100. The pending operation is
// left alone. A typed value too large to represent enters the error state
// rather than showing infinity.
func (e *Engine) Percent() {
	if e.failed {
		return
	}
	v := e.current() / 100
	if !isFinite(v) {
		e.fail()
		return
	}
	e.display = Format(v)
}

// ChooseOperator selects the pending operator, evaluating any completed
// operation first so chains run left to right. A first operand too large to
// represent enters the error state.
func (e *Engine) ChooseOperator(op Operator) {
	if e.failed || !op.Valid() {
		return
	}

	// Correcting the operator before the second operand is typed.
	if e.op != OpNone && e.awaiting {
		e.op = op
		e.expression = e.pendingExpression()
		return
	}

	input := e.current()
	switch {
	case !e.hasFirst:
		if !isFinite(input) {
			e.fail()
			return
		}
		e.first = input
		e.hasFirst = true
	case e.op != OpNone:
		result, ok := e.calculate(e.first, e.op, input)
		if !ok {
			return
		}
		e.first = result
		e.display = Format(result)
	}

	e.op = op
	e.awaiting = true
	e.expression = e.pendingExpression()
}

// Evaluate completes the pending operation. With no operator, or with the
// second operand not yet started, it does nothing.
func (e *Engine) Evaluate() {
	if e.failed || e.op == OpNone || e.awaiting {
		return
	}
	result, ok := e.calculate(e.first, e.op, e.current())
	if !ok {
		return
	}
	e.display = Format(result)
	e.expression = ""
	e.first = 0
	e.hasFirst = false
	e.op = OpNone
	e.awaiting = false
}

// DeleteLast removes the last typed character, falling back to "0".
func (e *Engine) DeleteLast() {
	if e.failed || e.awaiting {
		return
	}
	if len(e.display) <= 1 {
		e.display = "0"
		return
	}
	e.display = e.display[:len(e.display)-1]
	if e.display == "-" {
		e.display = "0"
	}
}

//
// Helper Functions (internal API)
//

func (e *Engine) reset() {
	e.display = "0"
	e.first = 0
	e.hasFirst = false
	e.op = OpNone
	e.awaiting = false
	e.expression = ""
	e.failed = false
}

// fail enters the error state; only Clear leaves it.
func (e *Engine) fail() {
	e.failed = true
	e.expression = ""
	e.display = ErrorText
	e.logger.Warn().Msg("non-finite result, engine in error state")
}

// current parses the value in progress.
func (e *Engine) current() float64 {
	v, err := ParseDisplay(e.display)
	if err != nil {
		return 0
	}
	return v
}

// calculate applies op and enters the error state on a non-finite result.
func (e *Engine) calculate(a float64, op Operator, b float64) (float64, bool) {
	result := op.Apply(a, b)
	if !isFinite(result) {
		e.fail()
		return 0, false
	}
	return result, true
}

func (e *Engine) pendingExpression() string {
	return Format(e.first) + " " + e.op.Symbol()
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
