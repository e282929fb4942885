package toon

import (
	"cmp"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	valueType         = reflect.TypeFor[Value]()
	timeType          = reflect.TypeFor[time.Time]()
	durationType      = reflect.TypeFor[time.Duration]()
	numberType        = reflect.TypeFor[json.Number]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Normalize converts an arbitrary Go value into a [Value].
//
// Maps become mappings with their keys sorted, since Go map iteration order
// is not stable; maps whose values are struct{} are treated as sets and become
// sorted sequences of their keys. Structs become mappings over their exported
// fields in declaration order, honoring json struct tags. Times render as
// RFC 3339 strings and byte slices as base64, as encoding/json does. Types
// implementing [json.Marshaler] are normalized from their JSON output with
// object key order preserved.
//
// Channels, functions, and complex numbers fail with [ErrUnsupportedType].
// Values that reference themselves fail with [ErrCycle].
func Normalize(v any) (Value, error) {
	n := &normalizer{visiting: make(map[visit]struct{})}
	return n.value(reflect.ValueOf(v))
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type normalizer struct {
	visiting map[visit]struct{}
}

func (n *normalizer) value(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
	}

	if v, ok, err := n.special(rv); ok {
		return v, err
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		// Round-trip through the shortest float32 text so 0.1 stays 0.1.
		f, _ := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'g', -1, 32), 64)
		return Float(f), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Interface:
		return n.value(rv.Elem())
	case reflect.Pointer:
		return n.enter(rv, 0, func() (Value, error) { return n.value(rv.Elem()) })
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(base64.StdEncoding.EncodeToString(rv.Bytes())), nil
		}
		return n.enter(rv, rv.Len(), func() (Value, error) { return n.sequence(rv) })
	case reflect.Array:
		return n.sequence(rv)
	case reflect.Map:
		return n.enter(rv, 0, func() (Value, error) { return n.mapping(rv) })
	case reflect.Struct:
		return n.structure(rv)
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

// special handles types with their own textual form.
func (n *normalizer) special(rv reflect.Value) (Value, bool, error) {
	if !rv.CanInterface() {
		return Value{}, false, nil
	}
	t := rv.Type()
	switch t {
	case valueType:
		return rv.Interface().(Value), true, nil
	case timeType:
		return String(rv.Interface().(time.Time).Format(time.RFC3339Nano)), true, nil
	case durationType:
		return String(time.Duration(rv.Int()).String()), true, nil
	case numberType:
		v, err := numberValue(rv.String())
		return v, true, err
	}
	if mv, ok := marshaler(rv, jsonMarshalerType); ok {
		data, err := mv.Interface().(json.Marshaler).MarshalJSON()
		if err != nil {
			return Value{}, true, fmt.Errorf("marshal %s: %w", t, err)
		}
		v, err := FromJSON(data)
		return v, true, err
	}
	if mv, ok := marshaler(rv, textMarshalerType); ok {
		text, err := mv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return Value{}, true, fmt.Errorf("marshal %s: %w", t, err)
		}
		return String(string(text)), true, nil
	}
	return Value{}, false, nil
}

// marshaler returns the value whose method set implements iface: rv itself,
// or its address when the method has a pointer receiver and rv is
// addressable, as encoding/json does.
func marshaler(rv reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	t := rv.Type()
	if t.Implements(iface) {
		return rv, true
	}
	if t.Kind() != reflect.Pointer && rv.CanAddr() && reflect.PointerTo(t).Implements(iface) {
		return rv.Addr(), true
	}
	return reflect.Value{}, false
}

// enter guards against reference cycles along the current path.
func (n *normalizer) enter(rv reflect.Value, length int, fn func() (Value, error)) (Value, error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type(), len: length}
	if _, ok := n.visiting[key]; ok {
		return Value{}, fmt.Errorf("%w: %s", ErrCycle, rv.Type())
	}
	n.visiting[key] = struct{}{}
	defer delete(n.visiting, key)
	return fn()
}

func (n *normalizer) sequence(rv reflect.Value) (Value, error) {
	items := make([]Value, rv.Len())
	for i := range items {
		v, err := n.value(rv.Index(i))
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Sequence(items...), nil
}

func (n *normalizer) mapping(rv reflect.Value) (Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })

	if et := rv.Type().Elem(); et.Kind() == reflect.Struct && et.NumField() == 0 {
		items := make([]Value, len(entries))
		for i, e := range entries {
			items[i] = String(e.key)
		}
		return Sequence(items...), nil
	}

	fields := make([]Field, len(entries))
	for i, e := range entries {
		v, err := n.value(e.val)
		if err != nil {
			return Value{}, err
		}
		fields[i] = Field{Key: e.key, Value: v}
	}
	return Mapping(fields...), nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal map key %s: %w", k.Type(), err)
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return fmt.Sprint(k.Interface()), nil
	}
}

func (n *normalizer) structure(rv reflect.Value) (Value, error) {
	if !hasExportedFields(rv.Type()) {
		return Null(), nil
	}
	sf := &structFields{index: make(map[string]int)}
	if err := n.collect(rv, 0, sf); err != nil {
		return Value{}, err
	}
	return Mapping(sf.fields...), nil
}

// structFields accumulates struct fields in declaration order. When two
// fields share a name the shallower one wins, as in encoding/json.
type structFields struct {
	fields []Field
	depths []int
	index  map[string]int
}

func (s *structFields) add(name string, depth int, v Value) {
	if i, ok := s.index[name]; ok {
		if depth < s.depths[i] {
			s.fields[i].Value = v
			s.depths[i] = depth
		}
		return
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Key: name, Value: v})
	s.depths = append(s.depths, depth)
}

func (n *normalizer) collect(rv reflect.Value, depth int, out *structFields) error {
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, tagged := parseTag(tag)
		fv := rv.Field(i)

		if sf.Anonymous && !tagged {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := n.collect(fv, depth+1, out); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		v, err := n.value(fv)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
		out.add(name, depth, v)
	}
	return nil
}

func hasExportedFields(t reflect.Type) bool {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.IsExported() {
			return true
		}
		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && hasExportedFields(ft) {
				return true
			}
		}
	}
	return false
}

func parseTag(tag string) (name, opts string, tagged bool) {
	if tag == "" {
		return "", "", false
	}
	name, opts, _ = strings.Cut(tag, ",")
	return name, opts, name != ""
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	default:
		return false
	}
}

// numberValue parses numeric text, keeping integers exact when they fit.
func numberValue(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	// Out of range literals parse to an infinity, which Float maps to null.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, fmt.Errorf("%w: number %q", ErrInvalidInput, s)
	}
	return Float(f), nil
}
