package calcx

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// ErrorText is shown while the engine is in the error state.
	ErrorText = "Error"

	expThreshold     = 1e12
	expPrecision     = 7
	maxDisplayLength = 14
	reducedPrecision = 12
)

// Format renders v as display text: the shortest decimal that round-trips,
// with very large magnitudes squeezed to 7 significant digits and anything
// longer than 14 characters cut back to 12 significant digits.
//
// Format is idempotent: Format(v) == Format(parse(Format(v))) for finite v.
// Non-finite values render as ErrorText.
func Format(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return ErrorText
	}
	shown := v
	if math.Abs(v) >= expThreshold {
		shown = roundSignificant(v, expPrecision)
	}
	s := numberString(shown)
	if len(s) > maxDisplayLength {
		s = numberString(roundSignificant(v, reducedPrecision))
	}
	return s
}

// ParseDisplay reads display text back into a number. Incomplete trailing
// characters are ignored ("5." is 5, "1e+" is 1); overflow saturates to ±Inf.
func ParseDisplay(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimRight(s, ".e+-"), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

// exactDigits is enough 'e' precision to print any float64 exactly.
const exactDigits = 767

// roundSignificant rounds v to the given number of significant digits using
// its exact decimal expansion. Ties round away from zero.
func roundSignificant(v float64, digits int) float64 {
	if v == 0 {
		return v
	}
	mantissa, expText, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'e', exactDigits, 64), "e")
	exp, _ := strconv.Atoi(expText)
	all := strings.Replace(mantissa, ".", "", 1)

	kept := []byte(all[:digits])
	if all[digits] >= '5' {
		i := digits - 1
		for ; i >= 0 && kept[i] == '9'; i-- {
			kept[i] = '0'
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept[:digits-1]...)
			exp++
		} else {
			kept[i]++
		}
	}

	r, err := strconv.ParseFloat(string(kept)+"e"+strconv.Itoa(exp-digits+1), 64)
	if err != nil {
		return v
	}
	return math.Copysign(r, v)
}

// numberString follows the ECMAScript Number-to-String layout: plain
// notation for decimal exponents in (-7, 21), exponent notation otherwise.
func numberString(v float64) string {
	if v == 0 {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	mantissa, expText, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mantissa, ".", "", 1)
	k := len(digits)
	n := exp + 1

	var b strings.Builder
	b.WriteString(sign)
	switch {
	case k <= n && n <= 21:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case -6 < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if n-1 >= 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		e := n - 1
		if e < 0 {
			e = -e
		}
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}
