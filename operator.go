package calcx

// Operator is one of the four binary operations. OpNone marks "no operator".
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

type operatorRule struct {
	symbol string
	ascii  string
	apply  func(a, b float64) float64
}

var operatorTable = [...]operatorRule{
	OpAdd:      {symbol: "+", ascii: "+", apply: func(a, b float64) float64 { return a + b }},
	OpSubtract: {symbol: "−", ascii: "-", apply: func(a, b float64) float64 { return a - b }},
	OpMultiply: {symbol: "×", ascii: "*", apply: func(a, b float64) float64 { return a * b }},
	OpDivide:   {symbol: "÷", ascii: "/", apply: func(a, b float64) float64 { return a / b }},
}

// Operators lists the four binary operators.
func Operators() []Operator {
	return []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

func (op Operator) Valid() bool {
	return op >= OpAdd && op <= OpDivide
}

// Symbol is the glyph shown in the expression line.
func (op Operator) Symbol() string {
	if !op.Valid() {
		return ""
	}
	return operatorTable[op].symbol
}

// ASCII is the plain keyboard form of the operator.
func (op Operator) ASCII() string {
	if !op.Valid() {
		return ""
	}
	return operatorTable[op].ascii
}

func (op Operator) String() string {
	if !op.Valid() {
		return "none"
	}
	return operatorTable[op].symbol
}

// Apply evaluates a op b. Division by zero follows IEEE-754 and yields a
// non-finite result; callers decide what that means.
func (op Operator) Apply(a, b float64) float64 {
	return operatorTable[op].apply(a, b)
}

// ParseOperator accepts display symbols and their ASCII spellings.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "x", "X":
		return OpMultiply, true
	}
	for _, op := range Operators() {
		if s == op.Symbol() || s == op.ASCII() {
			return op, true
		}
	}
	return OpNone, false
}
