package toon

import (
	"strconv"
	"strings"
)

// header describes the token that introduces a sequence block:
//
//	key[#3|]{a|b}:
type header struct {
	length int
	key    string
	hasKey bool // an empty key still renders as `""`, unlike a keyless header
	fields []string
}

// format renders the header. The delimiter appears inside the brackets only
// when it is not the default comma.
func (h header) format(cfg config) string {
	var b strings.Builder
	if h.hasKey {
		b.WriteString(formatKey(h.key))
	}
	b.WriteByte('[')
	b.WriteString(string(cfg.lengthMarker))
	b.WriteString(strconv.Itoa(h.length))
	if cfg.delimiter != Comma {
		b.WriteString(string(cfg.delimiter))
	}
	b.WriteByte(']')
	if len(h.fields) > 0 {
		b.WriteByte('{')
		for i, f := range h.fields {
			if i > 0 {
				b.WriteString(string(cfg.delimiter))
			}
			b.WriteString(formatKey(f))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}

// inline renders an all-scalar sequence on a single line: its header
// followed by the joined values.
func inline(h header, items []Value, cfg config) string {
	s := h.format(cfg)
	if len(items) == 0 {
		return s
	}
	return s + " " + joinScalars(items, cfg.delimiter)
}
