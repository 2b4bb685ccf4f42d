// Package keymap translates physical key names into calculator actions.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/comalice/calcx"
)

var ErrUnboundKey = errors.New("unbound key")

// Keymap is an immutable key name -> action table.
type Keymap struct {
	bindings map[string]calcx.Action
}

func defaults() map[string]calcx.Action {
	b := map[string]calcx.Action{
		".":         calcx.Decimal,
		",":         calcx.Decimal,
		"Enter":     calcx.Equals,
		"=":         calcx.Equals,
		"Backspace": calcx.Delete,
		"%":         calcx.Percent,
		"Escape":    calcx.Clear,
		"c":         calcx.Clear,
		"C":         calcx.Clear,
		"n":         calcx.ToggleSign,
		"F9":        calcx.ToggleSign,

		"+":        calcx.OperatorKey(calcx.OpAdd),
		"Add":      calcx.OperatorKey(calcx.OpAdd),
		"-":        calcx.OperatorKey(calcx.OpSubtract),
		"Subtract": calcx.OperatorKey(calcx.OpSubtract),
		"*":        calcx.OperatorKey(calcx.OpMultiply),
		"x":        calcx.OperatorKey(calcx.OpMultiply),
		"X":        calcx.OperatorKey(calcx.OpMultiply),
		"Multiply": calcx.OperatorKey(calcx.OpMultiply),
		"/":        calcx.OperatorKey(calcx.OpDivide),
		"Divide":   calcx.OperatorKey(calcx.OpDivide),
	}
	for _, op := range calcx.Operators() {
		b[op.Symbol()] = calcx.OperatorKey(op)
	}
	for d := calcx.Digit(0); d <= 9; d++ {
		b[d.String()] = calcx.DigitKey(d)
	}
	return b
}

// New builds the default keymap with overrides applied. Override values are
// action tokens such as "equals" or "operator:+".
func New(overrides map[string]string) (*Keymap, error) {
	b := defaults()
	for key, token := range overrides {
		if key == "" {
			return nil, errors.New("empty key name in bindings")
		}
		a, err := calcx.ParseAction(token)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		b[key] = a
	}
	return &Keymap{bindings: b}, nil
}

// Default returns the built-in keymap.
func Default() *Keymap {
	return &Keymap{bindings: defaults()}
}

// Lookup returns the action bound to key.
func (k *Keymap) Lookup(key string) (calcx.Action, error) {
	a, ok := k.bindings[key]
	if !ok {
		return calcx.Action{}, fmt.Errorf("%w: %q", ErrUnboundKey, key)
	}
	return a, nil
}

// Actions resolves a whole key sequence, failing on the first unbound key.
func (k *Keymap) Actions(keys []string) ([]calcx.Action, error) {
	actions := make([]calcx.Action, 0, len(keys))
	for _, key := range keys {
		a, err := k.Lookup(key)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Keys lists bound key names, sorted.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.bindings))
	for key := range k.bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Split breaks typed input into key names. Every rune is a key except
// whitespace, which is skipped, and {Name} groups, which name a key
// ("12{Backspace}3=").
func Split(input string) ([]string, error) {
	var keys []string
	rest := input
	for rest != "" {
		r := []rune(rest)[0]
		switch {
		case unicode.IsSpace(r):
			rest = rest[len(string(r)):]
		case r == '{':
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key name in %q", input)
			}
			name := rest[1:end]
			if name == "" {
				return nil, fmt.Errorf("empty key name in %q", input)
			}
			keys = append(keys, name)
			rest = rest[end+1:]
		default:
			keys = append(keys, string(r))
			rest = rest[len(string(r)):]
		}
	}
	return keys, nil
}
