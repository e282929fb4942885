package toon

// encoder walks a Value tree once, pushing lines to w. Recursion depth
// follows the nesting depth of the input.
type encoder struct {
	cfg config
	w   *lineWriter
}

// encodeValue renders v. A scalar renders as its bare token; a sequence or
// mapping renders as a block starting at depth 0.
func encodeValue(v Value, cfg config) string {
	switch v.kind {
	case KindSequence:
		e := &encoder{cfg: cfg, w: newLineWriter(cfg.indent)}
		e.sequence(header{}, v.items, 0)
		return e.w.String()
	case KindMapping:
		e := &encoder{cfg: cfg, w: newLineWriter(cfg.indent)}
		e.pairs(v.fields, 0)
		return e.w.String()
	default:
		return formatScalar(v, cfg.delimiter)
	}
}

func (e *encoder) pairs(fields []Field, depth int) {
	for _, f := range fields {
		e.pair(f, depth)
	}
}

func (e *encoder) pair(f Field, depth int) {
	switch f.Value.kind {
	case KindSequence:
		e.sequence(header{key: f.Key, hasKey: true}, f.Value.items, depth)
	case KindMapping:
		e.w.push(depth, formatKey(f.Key)+":")
		e.pairs(f.Value.fields, depth+1)
	default:
		e.w.push(depth, formatKey(f.Key)+": "+formatScalar(f.Value, e.cfg.delimiter))
	}
}

// sequence picks the first representation that fits: empty, inline
// scalars, list of inline rows, tabular block, or list items.
func (e *encoder) sequence(h header, items []Value, depth int) {
	h.length = len(items)
	switch {
	case len(items) == 0, allScalar(items):
		e.w.push(depth, inline(h, items, e.cfg))
	case allScalarSequences(items):
		e.w.push(depth, h.format(e.cfg))
		for _, item := range items {
			e.w.push(depth+1, listItemPrefix+inline(header{length: len(item.items)}, item.items, e.cfg))
		}
	default:
		if fields, ok := tabularFields(items); ok {
			h.fields = fields
			e.w.push(depth, h.format(e.cfg))
			e.rows(items, fields, depth+1)
			return
		}
		e.w.push(depth, h.format(e.cfg))
		for _, item := range items {
			e.listItem(item, depth+1)
		}
	}
}

func (e *encoder) rows(items []Value, fields []string, depth int) {
	row := make([]Value, len(fields))
	for _, item := range items {
		for i, key := range fields {
			row[i], _ = item.Get(key)
		}
		e.w.push(depth, joinScalars(row, e.cfg.delimiter))
	}
}

// listItem writes one element of a list-item block at depth.
func (e *encoder) listItem(item Value, depth int) {
	switch item.kind {
	case KindSequence:
		if allScalar(item.items) {
			e.w.push(depth, listItemPrefix+inline(header{length: len(item.items)}, item.items, e.cfg))
			return
		}
		e.w.push(depth, listItemMarker)
		e.sequence(header{}, item.items, depth+1)
	case KindMapping:
		if len(item.fields) == 0 {
			e.w.push(depth, listItemMarker)
			return
		}
		e.fold(item.fields, depth)
	default:
		e.w.push(depth, listItemPrefix+formatScalar(item, e.cfg.delimiter))
	}
}

// fold writes a mapping as a list item whose first pair shares the marker
// line. The remaining pairs follow one level deeper than the marker.
func (e *encoder) fold(fields []Field, depth int) {
	first := fields[0]
	key := formatKey(first.Key)

	switch first.Value.kind {
	case KindSequence:
		e.foldSequence(first.Key, first.Value.items, depth)
	case KindMapping:
		e.w.push(depth, listItemPrefix+key+":")
		e.pairs(first.Value.fields, depth+2)
	default:
		e.w.push(depth, listItemPrefix+key+": "+formatScalar(first.Value, e.cfg.delimiter))
	}

	e.pairs(fields[1:], depth+1)
}

// foldSequence writes a sequence that is the first value of a folded
// mapping. Tabular rows sit at depth+1, level with the mapping's other keys.
func (e *encoder) foldSequence(key string, items []Value, depth int) {
	h := header{key: key, hasKey: true, length: len(items)}
	if allScalar(items) {
		e.w.push(depth, listItemPrefix+inline(h, items, e.cfg))
		return
	}
	if fields, ok := tabularFields(items); ok {
		h.fields = fields
		e.w.push(depth, listItemPrefix+h.format(e.cfg))
		e.rows(items, fields, depth+1)
		return
	}
	e.w.push(depth, listItemPrefix+h.format(e.cfg))
	for _, item := range items {
		e.listItem(item, depth+1)
	}
}

func allScalar(items []Value) bool {
	for _, item := range items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

func allScalarSequences(items []Value) bool {
	for _, item := range items {
		if item.kind != KindSequence || !allScalar(item.items) {
			return false
		}
	}
	return true
}

// tabularFields returns the column order for items when every item is a
// non-empty mapping with the same key set and only scalar values.
func tabularFields(items []Value) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	first := items[0]
	if first.kind != KindMapping || len(first.fields) == 0 {
		return nil, false
	}
	fields := first.keys()
	set := make(map[string]struct{}, len(fields))
	for _, k := range fields {
		set[k] = struct{}{}
	}
	for _, item := range items {
		if item.kind != KindMapping || len(item.fields) != len(set) {
			return nil, false
		}
		for _, f := range item.fields {
			if _, ok := set[f.Key]; !ok {
				return nil, false
			}
			if !f.Value.IsScalar() {
				return nil, false
			}
		}
	}
	return fields, true
}
