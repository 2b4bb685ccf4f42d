// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/production"
	"gopkg.in/yaml.v3"
)

// GenChainActions builds n binary operations chained left to right, ending
// in equals: 1 + 2 + 3 ... n =.
func GenChainActions(n int) []calcx.Action {
	if n < 1 {
		n = 1
	}
	actions := make([]calcx.Action, 0, 3*n+1)
	for i := 1; i <= n; i++ {
		actions = append(actions, calcx.DigitKey(calcx.Digit(i%9+1)))
		if i < n {
			actions = append(actions, calcx.OperatorKey(calcx.OpAdd))
		}
	}
	return append(actions, calcx.Equals)
}

// GenRandomActions returns n actions drawn from every action kind. The
// sequence is deterministic for a given seed.
func GenRandomActions(n int, seed uint64) []calcx.Action {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ops := calcx.Operators()
	actions := make([]calcx.Action, n)
	for i := range actions {
		switch kind := calcx.ActionKinds()[r.IntN(len(calcx.ActionKinds()))]; kind {
		case calcx.KindDigit:
			actions[i] = calcx.DigitKey(calcx.Digit(r.IntN(10)))
		case calcx.KindOperator:
			actions[i] = calcx.OperatorKey(ops[r.IntN(len(ops))])
		default:
			actions[i] = calcx.Action{Kind: kind}
		}
	}
	return actions
}

// GenTapeYAML encodes a tape of n random keys, the way tapes sit on disk.
func GenTapeYAML(n int) []byte {
	keys := make([]string, 0, n)
	for _, a := range GenRandomActions(n, uint64(n)) {
		keys = append(keys, tapeKey(a))
	}
	data, err := yaml.Marshal(&production.Tape{Name: fmt.Sprintf("random_%d", n), Keys: keys})
	if err != nil {
		panic(err)
	}
	return data
}

func tapeKey(a calcx.Action) string {
	switch a.Kind {
	case calcx.KindDigit:
		return a.Digit.String()
	case calcx.KindOperator:
		return a.Operator.ASCII()
	case calcx.KindDecimal:
		return "."
	case calcx.KindEquals:
		return "="
	case calcx.KindClear:
		return "Escape"
	case calcx.KindDelete:
		return "Backspace"
	case calcx.KindPercent:
		return "%"
	default:
		return "n"
	}
}
