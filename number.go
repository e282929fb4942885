package toon

import (
	"math"
	"strconv"
	"strings"
)

func formatNumber(v Value) string {
	switch v.numKind {
	case numInt:
		return strconv.FormatInt(v.intVal, 10)
	case numUint:
		return strconv.FormatUint(v.uintVal, 10)
	default:
		return formatFloat(v.fltVal)
	}
}

// formatFloat renders f the way ECMAScript's Number::toString does: the
// shortest digit string that round-trips, in fixed notation when the decimal
// exponent lies in [-6, 20] and in exponential notation otherwise.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nullLiteral
	}
	if f == 0 {
		return "0"
	}

	// Shortest round-trip digits: d.ddddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	neg := sci[0] == '-'
	if neg {
		sci = sci[1:]
	}
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)

	// n is the position of the decimal point relative to the digit string.
	k := len(digits)
	n := exp + 1

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
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
		}
		b.WriteString(strconv.Itoa(n - 1))
	}
	return b.String()
}
