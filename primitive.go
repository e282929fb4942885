package toon

import (
	"regexp"
	"strings"
)

const (
	nullLiteral  = "null"
	trueLiteral  = "true"
	falseLiteral = "false"

	listItemMarker = "-"
	listItemPrefix = "- "
)

var (
	numericLike = regexp.MustCompile(`(?i)^-?\d+(?:\.\d+)?(?:e[+-]?\d+)?$`)
	leadingZero = regexp.MustCompile(`^0\d+$`)
	unquotedKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// formatScalar renders a null, boolean, number, or string token. Containers
// are not scalars and render as null.
func formatScalar(v Value, d Delimiter) string {
	switch v.kind {
	case KindBool:
		if v.boolVal {
			return trueLiteral
		}
		return falseLiteral
	case KindNumber:
		return formatNumber(v)
	case KindString:
		return formatString(v.strVal, d)
	default:
		return nullLiteral
	}
}

func formatString(s string, d Delimiter) string {
	if isSafeUnquoted(s, d) {
		return s
	}
	return quote(s)
}

// isSafeUnquoted reports whether s can be written bare without a decoder
// mistaking it for a literal, a number, or structure.
func isSafeUnquoted(s string, d Delimiter) bool {
	if s == "" {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	switch s {
	case trueLiteral, falseLiteral, nullLiteral:
		return false
	}
	if numericLike.MatchString(s) || leadingZero.MatchString(s) {
		return false
	}
	if strings.ContainsAny(s, ":\"\\[]{}\n\r\t") {
		return false
	}
	if strings.Contains(s, string(d)) {
		return false
	}
	return !strings.HasPrefix(s, listItemMarker)
}

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// formatKey renders a mapping key or tabular field name. Keys are always
// followed by ':' so the delimiter does not affect them.
func formatKey(key string) string {
	if unquotedKey.MatchString(key) {
		return key
	}
	return quote(key)
}

// joinScalars formats each value and joins them with the delimiter.
func joinScalars(values []Value, d Delimiter) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(string(d))
		}
		b.WriteString(formatScalar(v, d))
	}
	return b.String()
}
