package calcx

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidDigit    = errors.New("invalid digit")
	ErrInvalidOperator = errors.New("invalid operator")
)

type ActionKind int

const (
	KindDigit ActionKind = iota + 1
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindDelete
	KindPercent
	KindToggleSign
)

var kindNames = map[ActionKind]string{
	KindDigit:      "digit",
	KindDecimal:    "decimal",
	KindOperator:   "operator",
	KindEquals:     "equals",
	KindClear:      "clear",
	KindDelete:     "delete",
	KindPercent:    "percent",
	KindToggleSign: "toggle-sign",
}

// ActionKinds lists every kind in dispatch order.
func ActionKinds() []ActionKind {
	return []ActionKind{
		KindDigit, KindDecimal, KindOperator, KindEquals,
		KindClear, KindDelete, KindPercent, KindToggleSign,
	}
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Digit is a single decimal digit, 0 through 9.
type Digit uint8

// ParseDigit converts '0'..'9' to a Digit.
func ParseDigit(r rune) (Digit, bool) {
	if r < '0' || r > '9' {
		return 0, false
	}
	return Digit(r - '0'), true
}

func (d Digit) Valid() bool { return d <= 9 }

func (d Digit) String() string {
	return string(rune('0' + d))
}

// Action is the closed set of inputs the engine understands. Only the field
// matching Kind is meaningful: Digit for KindDigit, Operator for KindOperator.
type Action struct {
	Kind     ActionKind
	Digit    Digit
	Operator Operator
}

var (
	Decimal    = Action{Kind: KindDecimal}
	Equals     = Action{Kind: KindEquals}
	Clear      = Action{Kind: KindClear}
	Delete     = Action{Kind: KindDelete}
	Percent    = Action{Kind: KindPercent}
	ToggleSign = Action{Kind: KindToggleSign}
)

// DigitKey returns the action for typing d.
func DigitKey(d Digit) Action {
	return Action{Kind: KindDigit, Digit: d}
}

// OperatorKey returns the action for choosing op.
func OperatorKey(op Operator) Action {
	return Action{Kind: KindOperator, Operator: op}
}

// Validate reports whether the action carries a usable payload.
func (a Action) Validate() error {
	switch a.Kind {
	case KindDigit:
		if !a.Digit.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidDigit, a.Digit)
		}
	case KindOperator:
		if !a.Operator.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidOperator, a.Operator)
		}
	case KindDecimal, KindEquals, KindClear, KindDelete, KindPercent, KindToggleSign:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAction, a.Kind)
	}
	return nil
}

func (a Action) String() string {
	switch a.Kind {
	case KindDigit:
		return "digit:" + a.Digit.String()
	case KindOperator:
		return "operator:" + a.Operator.String()
	default:
		return a.Kind.String()
	}
}

// ParseAction parses the textual token form produced by Action.String.
func ParseAction(token string) (Action, error) {
	for _, k := range ActionKinds() {
		name := k.String()
		switch {
		case k == KindDigit && len(token) == len(name)+2 && token[:len(name)+1] == name+":":
			d, ok := ParseDigit(rune(token[len(token)-1]))
			if !ok {
				return Action{}, fmt.Errorf("%w: %q", ErrInvalidDigit, token)
			}
			return DigitKey(d), nil
		case k == KindOperator && len(token) > len(name)+1 && token[:len(name)+1] == name+":":
			op, ok := ParseOperator(token[len(name)+1:])
			if !ok {
				return Action{}, fmt.Errorf("%w: %q", ErrInvalidOperator, token)
			}
			return OperatorKey(op), nil
		case k != KindDigit && k != KindOperator && token == name:
			return Action{Kind: k}, nil
		}
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, token)
}
