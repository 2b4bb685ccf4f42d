package calcx

import "fmt"

// Mode is the coarse input state derived from the engine's fields.
type Mode int

const (
	// ModeEntering: typing the first operand, or looking at a fresh result.
	ModeEntering Mode = iota
	// ModeAwaiting: an operator was chosen and the second operand has not started.
	ModeAwaiting
	// ModeOperand: typing the second operand.
	ModeOperand
	// ModeError: a non-finite result; only Clear is accepted.
	ModeError
)

var modeNames = [...]string{
	ModeEntering: "entering",
	ModeAwaiting: "awaiting",
	ModeOperand:  "operand",
	ModeError:    "error",
}

// Modes lists every mode.
func Modes() []Mode {
	return []Mode{ModeEntering, ModeAwaiting, ModeOperand, ModeError}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", text)
}

// ModeTransition is one edge of the mode graph: applying an action of Kind
// while in From can leave the engine in To.
type ModeTransition struct {
	From Mode
	Kind ActionKind
	To   Mode
}

// Transitions returns every mode change the engine can make. Overflowing
// operands are what lead from entry modes into ModeError.
func Transitions() []ModeTransition {
	var ts []ModeTransition
	self := func(m Mode, kinds ...ActionKind) {
		for _, k := range kinds {
			ts = append(ts, ModeTransition{From: m, Kind: k, To: m})
		}
	}

	self(ModeEntering, KindDigit, KindDecimal, KindEquals, KindDelete, KindPercent, KindToggleSign, KindClear)
	ts = append(ts,
		ModeTransition{From: ModeEntering, Kind: KindOperator, To: ModeAwaiting},
		ModeTransition{From: ModeEntering, Kind: KindOperator, To: ModeError},
		ModeTransition{From: ModeEntering, Kind: KindPercent, To: ModeError},
	)

	self(ModeAwaiting, KindOperator, KindEquals, KindDelete, KindPercent, KindToggleSign)
	ts = append(ts,
		ModeTransition{From: ModeAwaiting, Kind: KindDigit, To: ModeOperand},
		ModeTransition{From: ModeAwaiting, Kind: KindDecimal, To: ModeOperand},
		ModeTransition{From: ModeAwaiting, Kind: KindClear, To: ModeEntering},
	)

	self(ModeOperand, KindDigit, KindDecimal, KindDelete, KindPercent, KindToggleSign)
	ts = append(ts,
		ModeTransition{From: ModeOperand, Kind: KindOperator, To: ModeAwaiting},
		ModeTransition{From: ModeOperand, Kind: KindOperator, To: ModeError},
		ModeTransition{From: ModeOperand, Kind: KindEquals, To: ModeEntering},
		ModeTransition{From: ModeOperand, Kind: KindEquals, To: ModeError},
		ModeTransition{From: ModeOperand, Kind: KindPercent, To: ModeError},
		ModeTransition{From: ModeOperand, Kind: KindClear, To: ModeEntering},
	)

	self(ModeError, KindDigit, KindDecimal, KindOperator, KindEquals, KindDelete, KindPercent, KindToggleSign)
	ts = append(ts, ModeTransition{From: ModeError, Kind: KindClear, To: ModeEntering})

	return ts
}
