package toon

import (
	"fmt"
	"strings"
)

// Delimiter separates inline values and tabular columns.
type Delimiter string

const (
	Comma Delimiter = ","
	Tab   Delimiter = "\t"
	Pipe  Delimiter = "|"
)

var delimiters = []Delimiter{Comma, Tab, Pipe}

var delimiterNames = map[Delimiter]string{
	Comma: "comma",
	Tab:   "tab",
	Pipe:  "pipe",
}

// String returns the delimiter character.
func (d Delimiter) String() string { return string(d) }

// Name returns the delimiter's flag name ("comma", "tab", "pipe"), or the
// quoted character for an unsupported delimiter.
func (d Delimiter) Name() string {
	if n, ok := delimiterNames[d]; ok {
		return n
	}
	return fmt.Sprintf("%q", string(d))
}

// Delimiters returns all supported delimiters.
func Delimiters() []Delimiter {
	out := make([]Delimiter, len(delimiters))
	copy(out, delimiters)
	return out
}

// ParseDelimiter parses a delimiter name or character. Recognizes "comma",
// "tab", "pipe" (case-insensitive) and the characters themselves.
func ParseDelimiter(s string) (Delimiter, error) {
	for _, d := range delimiters {
		if s == string(d) || strings.EqualFold(s, delimiterNames[d]) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDelimiter, s)
}

// LengthMarker is an optional glyph written before the length inside a
// sequence header.
type LengthMarker string

const (
	NoLengthMarker   LengthMarker = ""
	HashLengthMarker LengthMarker = "#"
)

// Option configures an encode call.
type Option func(*config)

// WithIndent sets the number of spaces per nesting level (default 2).
func WithIndent(n int) Option {
	return func(c *config) { c.indent = n }
}

// WithDelimiter sets the delimiter for inline values and tabular rows
// (default [Comma]).
func WithDelimiter(d Delimiter) Option {
	return func(c *config) { c.delimiter = d }
}

// WithLengthMarker sets the glyph written before every sequence length
// (default none).
func WithLengthMarker(m LengthMarker) Option {
	return func(c *config) { c.lengthMarker = m }
}

// config is resolved once per call and passed by value through the encoder.
type config struct {
	indent       int
	delimiter    Delimiter
	lengthMarker LengthMarker
}

func defaultConfig() config {
	return config{indent: 2, delimiter: Comma, lengthMarker: NoLengthMarker}
}

func resolve(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.indent < 0 {
		return config{}, fmt.Errorf("%w: %w: %d", ErrInvalidOption, ErrInvalidIndent, cfg.indent)
	}
	if _, ok := delimiterNames[cfg.delimiter]; !ok {
		return config{}, fmt.Errorf("%w: %w: %q", ErrInvalidOption, ErrUnsupportedDelimiter, string(cfg.delimiter))
	}
	switch cfg.lengthMarker {
	case NoLengthMarker, HashLengthMarker:
	default:
		return config{}, fmt.Errorf("%w: %w: %q", ErrInvalidOption, ErrInvalidLengthMarker, string(cfg.lengthMarker))
	}
	return cfg, nil
}
