// Package toon encodes JSON-shaped data as TOON, a compact,
// indentation-based text format that is terser than JSON for flat and
// tabular data while staying unambiguous to parse.
//
// The central entry points are [Encode], which renders a [Value], and
// [Marshal] / [Write], which first convert an arbitrary Go value with
// [Normalize]:
//
//	out, err := toon.Marshal(map[string]any{"tags": []string{"a", "b"}})
//	// tags[2]: a,b
//
// # Data Model
//
// A [Value] is null, a boolean, a number, a string, an ordered sequence, or
// an ordered mapping. Build values directly with [Null], [Bool], [Int],
// [Float], [String], [Sequence], and [Mapping], or decode them with
// [FromJSON] and [FromYAML], which keep object keys in document order. Go
// maps have no order, so [Normalize] sorts their keys.
//
// # Output
//
// Mappings render one "key: value" line per pair, nesting by indentation.
// Sequences start with a header carrying their length:
//
//	tags[2]: reading,gaming
//
// A sequence of mappings that share the same keys and hold only scalars
// becomes a table with one row per element:
//
//	items[2]{sku,qty}:
//	  A1,2
//	  B2,1
//
// Anything else becomes a list of "- " items. A mapping inside a list has
// its first pair written on the item line:
//
//	items[2]:
//	  - id: 1
//	    name: First
//	  - id: 2
//	    extra: true
//
// Strings are quoted only when they would otherwise read as a literal, a
// number, or structure. Numbers follow the JavaScript rendering: shortest
// round-trip digits, in exponential notation when |x| < 1e-6 or |x| >= 1e21.
//
// # Options
//
//   - [WithIndent]: spaces per level (default 2)
//   - [WithDelimiter]: [Comma], [Tab], or [Pipe] between inline values and
//     table cells; a non-comma delimiter is also written inside each header's
//     brackets
//   - [WithLengthMarker]: prefix every length with [HashLengthMarker]
//
// Use [ParseDelimiter] to convert a CLI flag string into a [Delimiter].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidOption]: any invalid option; wraps one of
//     [ErrInvalidIndent], [ErrUnsupportedDelimiter], [ErrInvalidLengthMarker]
//   - [ErrUnsupportedType]: [Normalize] met a channel, function, or complex
//   - [ErrCycle]: the input references itself
//   - [ErrInvalidInput]: malformed JSON or YAML input
package toon
