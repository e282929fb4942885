package toon

import "strings"

// lineWriter accumulates indented output lines in call order.
type lineWriter struct {
	unit    string
	indents []string
	lines   []string
}

func newLineWriter(indent int) *lineWriter {
	return &lineWriter{unit: strings.Repeat(" ", indent)}
}

func (w *lineWriter) indent(depth int) string {
	for len(w.indents) <= depth {
		w.indents = append(w.indents, strings.Repeat(w.unit, len(w.indents)))
	}
	return w.indents[depth]
}

// push appends content prefixed by depth levels of indentation.
func (w *lineWriter) push(depth int, content string) {
	w.lines = append(w.lines, w.indent(depth)+content)
}

// String joins the lines with newlines. There is no trailing newline.
func (w *lineWriter) String() string {
	return strings.Join(w.lines, "\n")
}
