package toon

import (
	"fmt"
	"io"
	"iter"
)

// WriteIter collects items from seq and writes them to w as one root
// sequence. TOON headers carry the element count, so every item is gathered
// and normalized before anything is written.
func WriteIter[T any](w io.Writer, seq iter.Seq[T], opts ...Option) error {
	cfg, err := resolve(opts)
	if err != nil {
		return err
	}
	var items []Value
	var normErr error
	i := 0
	seq(func(item T) bool {
		v, err := Normalize(item)
		if err != nil {
			normErr = fmt.Errorf("item %d: %w", i, err)
			return false
		}
		items = append(items, v)
		i++
		return true
	})
	if normErr != nil {
		return normErr
	}
	_, err = io.WriteString(w, encodeValue(Sequence(items...), cfg)+"\n")
	return err
}

// WriteChan collects items from ch until it is closed and writes them to w.
// It is a thin wrapper around [WriteIter].
func WriteChan[T any](w io.Writer, ch <-chan T, opts ...Option) error {
	return WriteIter(w, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
