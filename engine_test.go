package calcx_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/comalice/calcx"
	. "github.com/onsi/gomega"
)

// press feeds a compact key string: digits, '.', '+', '-', '*', '/', '=',
// 'c' clear, '<' delete, '%' percent, '~' sign.
func press(t testing.TB, e *Engine, keys string) Snapshot {
	t.Helper()
	for _, r := range keys {
		var a Action
		switch r {
		case '.':
			a = Decimal
		case '=':
			a = Equals
		case 'c':
			a = Clear
		case '<':
			a = Delete
		case '%':
			a = Percent
		case '~':
			a = ToggleSign
		default:
			if d, ok := ParseDigit(r); ok {
				a = DigitKey(d)
			} else if op, ok := ParseOperator(string(r)); ok {
				a = OperatorKey(op)
			} else {
				t.Fatalf("unsupported key %q", r)
			}
		}
		if _, err := e.Dispatch(a); err != nil {
			t.Fatalf("dispatch %v: %v", a, err)
		}
	}
	return e.Snapshot()
}

func TestNewEngineIsCleared(t *testing.T) {
	e := New()
	snap := e.Snapshot()
	if snap.Display != "0" || snap.Expression != "" || snap.Failed() {
		t.Errorf("unexpected initial snapshot %+v", snap)
	}
	if e.Mode() != ModeEntering {
		t.Errorf("expected entering mode, got %v", e.Mode())
	}
}

func TestInputDigit(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"005", "5"},
		{"00", "0"},
		{"50", "50"},
		{"1234567890", "1234567890"},
		{"0.05", "0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			if got := press(t, New(), tt.keys).Display; got != tt.want {
				t.Errorf("typing %q: got %q want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestInputDigitStartsSecondOperand(t *testing.T) {
	g := NewWithT(t)
	e := New()
	snap := press(t, e, "12+")
	g.Expect(snap.Display).To(Equal("12"))
	g.Expect(snap.Mode).To(Equal(ModeAwaiting))

	snap = press(t, e, "3")
	g.Expect(snap.Display).To(Equal("3"))
	g.Expect(snap.Expression).To(Equal("12 +"))
	g.Expect(snap.Mode).To(Equal(ModeOperand))
}

func TestInputDecimal(t *testing.T) {
	g := NewWithT(t)
	e := New()

	g.Expect(press(t, e, ".").Display).To(Equal("0."))
	g.Expect(press(t, e, ".").Display).To(Equal("0."))
	g.Expect(press(t, e, "5.").Display).To(Equal("0.5"))

	e.Clear()
	press(t, e, "7+")
	g.Expect(press(t, e, ".").Display).To(Equal("0."))
	g.Expect(press(t, e, "25=").Display).To(Equal("7.25"))
}

func TestToggleSign(t *testing.T) {
	g := NewWithT(t)
	e := New()

	g.Expect(press(t, e, "~").Display).To(Equal("0"))
	g.Expect(press(t, e, "5~").Display).To(Equal("-5"))
	g.Expect(press(t, e, "~").Display).To(Equal("5"))
	g.Expect(press(t, e, "~+").Expression).To(Equal("-5 +"))
	g.Expect(press(t, e, "2=").Display).To(Equal("-3"))
}

func TestPercent(t *testing.T) {
	g := NewWithT(t)
	e := New()
	g.Expect(press(t, e, "50%").Display).To(Equal("0.5"))

	e.Clear()
	snap := press(t, e, "200+50%")
	g.Expect(snap.Display).To(Equal("0.5"))
	g.Expect(snap.Expression).To(Equal("200 +"))
	g.Expect(snap.Mode).To(Equal(ModeOperand))
	g.Expect(press(t, e, "=").Display).To(Equal("200.5"))
}

func TestEvaluateEachOperator(t *testing.T) {
	tests := []struct {
		keys       string
		expression string
		want       string
	}{
		{"12+4", "12 +", "16"},
		{"12-4", "12 −", "8"},
		{"12*4", "12 ×", "48"},
		{"12/4", "12 ÷", "3"},
		{"0.1+0.2", "0.1 +", "0.3"},
		{"1/3", "1 ÷", "0.333333333333"},
		{"1000000*1000000", "1000000 ×", "1000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			e := New()
			snap := press(t, e, tt.keys)
			if snap.Expression != tt.expression {
				t.Errorf("expression: got %q want %q", snap.Expression, tt.expression)
			}
			snap = press(t, e, "=")
			if snap.Display != tt.want {
				t.Errorf("display: got %q want %q", snap.Display, tt.want)
			}
			if snap.Expression != "" || snap.Mode != ModeEntering {
				t.Errorf("expected fresh state after equals, got %+v", snap)
			}
		})
	}
}

func TestChainedEvaluation(t *testing.T) {
	g := NewWithT(t)
	e := New()

	snap := press(t, e, "5+3*")
	g.Expect(snap.Display).To(Equal("8"))
	g.Expect(snap.Expression).To(Equal("8 ×"))

	g.Expect(press(t, e, "2=").Display).To(Equal("16"))
}

func TestOperatorCorrection(t *testing.T) {
	g := NewWithT(t)
	e := New()

	g.Expect(press(t, e, "5+").Expression).To(Equal("5 +"))
	g.Expect(press(t, e, "-").Expression).To(Equal("5 −"))
	g.Expect(press(t, e, "3=").Display).To(Equal("2"))
}

func TestEvaluateNoOps(t *testing.T) {
	g := NewWithT(t)
	e := New()

	g.Expect(press(t, e, "7=").Display).To(Equal("7"))

	snap := press(t, e, "+=")
	g.Expect(snap.Display).To(Equal("7"))
	g.Expect(snap.Expression).To(Equal("7 +"))
	g.Expect(snap.Mode).To(Equal(ModeAwaiting))
}

func TestResultKeepsAcceptingDigits(t *testing.T) {
	e := New()
	if got := press(t, e, "5+3*2=5").Display; got != "165" {
		t.Errorf("expected digits to append to the result, got %q", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, keys := range []string{"8/0=", "0/0=", "8/0+"} {
		t.Run(keys, func(t *testing.T) {
			g := NewWithT(t)
			e := New()
			snap := press(t, e, keys)
			g.Expect(snap.Display).To(Equal(ErrorText))
			g.Expect(snap.Expression).To(BeEmpty())
			g.Expect(snap.Failed()).To(BeTrue())

			for _, a := range []Action{DigitKey(4), Decimal, OperatorKey(OpAdd), Equals, Delete, Percent, ToggleSign} {
				snap, err := e.Dispatch(a)
				g.Expect(err).NotTo(HaveOccurred())
				g.Expect(snap.Display).To(Equal(ErrorText), "action %v should be ignored", a)
			}

			snap = press(t, e, "c")
			g.Expect(snap).To(Equal(Snapshot{Display: "0", Mode: ModeEntering}))
		})
	}
}

func TestClearIsIdempotent(t *testing.T) {
	g := NewWithT(t)
	for _, keys := range []string{"", "123", "12+", "12+3", "9/0=", "5.5~%"} {
		e := New()
		press(t, e, keys)
		e.Clear()
		first := e.Snapshot()
		e.Clear()
		g.Expect(e.Snapshot()).To(Equal(first))
		g.Expect(first).To(Equal(Snapshot{Display: "0", Expression: "", Mode: ModeEntering}))
	}
}

func TestDeleteLast(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"<", "0"},
		{"12<", "1"},
		{"1<", "0"},
		{"1.5<", "1."},
		{"1.5<<", "1"},
		{"5~<", "0"},
		{"12~<", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			if got := press(t, New(), tt.keys).Display; got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteLastIgnoredWhileAwaiting(t *testing.T) {
	g := NewWithT(t)
	e := New()
	snap := press(t, e, "12+<")
	g.Expect(snap.Display).To(Equal("12"))
	g.Expect(snap.Expression).To(Equal("12 +"))
	g.Expect(snap.Mode).To(Equal(ModeAwaiting))
}

func TestLargeResultRoundsHalfAwayFromZero(t *testing.T) {
	g := NewWithT(t)
	e := New()
	g.Expect(press(t, e, "1234568500000+0=").Display).To(Equal("1234569000000"))

	e.Clear()
	g.Expect(press(t, e, "0-1234568500000=").Display).To(Equal("-1234569000000"))
}

func TestOverflowedOperandEntersErrorState(t *testing.T) {
	e := New()
	press(t, e, "1"+strings.Repeat("9", 400))
	if snap := press(t, e, "+"); !snap.Failed() {
		t.Errorf("expected error state, got %+v", snap)
	}

	e.Clear()
	press(t, e, "1"+strings.Repeat("9", 400))
	if snap := press(t, e, "%"); !snap.Failed() {
		t.Errorf("expected error state from percent, got %+v", snap)
	}
}

func TestDispatchRejectsMalformedActions(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown kind", Action{Kind: 99}, ErrUnknownAction},
		{"zero action", Action{}, ErrUnknownAction},
		{"digit out of range", DigitKey(12), ErrInvalidDigit},
		{"no operator", OperatorKey(OpNone), ErrInvalidOperator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			press(t, e, "42+")
			before := e.Snapshot()

			snap, err := e.Dispatch(tt.action)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if snap != before {
				t.Errorf("state changed: %+v -> %+v", before, snap)
			}
		})
	}
}

func TestDispatchAllStopsAtMalformedAction(t *testing.T) {
	g := NewWithT(t)
	e := New()
	snap, err := e.DispatchAll([]Action{DigitKey(1), DigitKey(2), {Kind: 0}, DigitKey(3)})
	g.Expect(err).To(MatchError(ErrUnknownAction))
	g.Expect(snap.Display).To(Equal("12"))
}

func TestObserversSeeEveryAction(t *testing.T) {
	g := NewWithT(t)
	var seen []Snapshot
	var kinds []ActionKind
	e := New(WithObserver(ObserverFunc(func(a Action, s Snapshot) {
		kinds = append(kinds, a.Kind)
		seen = append(seen, s)
	})))

	press(t, e, "0<=9")
	g.Expect(kinds).To(Equal([]ActionKind{KindDigit, KindDelete, KindEquals, KindDigit}))
	g.Expect(seen).To(HaveLen(4))
	g.Expect(seen[3].Display).To(Equal("9"))
}
