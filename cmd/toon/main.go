// toon - convert JSON or YAML to TOON
//
// Usage:
//
//	toon [flags] [file]
//
// Reads a single JSON or YAML document from file, or from stdin when file is
// absent or "-", and writes its TOON encoding to stdout.
//
// Flags:
//
//	-indent N          spaces per indentation level (default 2)
//	-delimiter NAME    comma, tab, or pipe (default comma)
//	-length-marker     prefix sequence lengths with '#'
//	-input FORMAT      json, yaml, or auto (default auto)
//	-stats             print input and output sizes to stderr
//	-version           print version info
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bjaus/toon"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("toon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	indent := fs.Int("indent", 2, "spaces per indentation level")
	delim := fs.String("delimiter", toon.Comma.Name(), "delimiter: comma, tab, or pipe")
	marker := fs.Bool("length-marker", false, "prefix sequence lengths with '#'")
	inputFormat := fs.String("input", formatAuto, "input format: json, yaml, or auto")
	stats := fs.Bool("stats", false, "print input and output sizes to stderr")
	showVersion := fs.Bool("version", false, "print version info")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: toon [flags] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "toon %s\n", version)
		return 0
	}

	d, err := toon.ParseDelimiter(*delim)
	if err != nil {
		return fail(stderr, err)
	}
	opts := []toon.Option{toon.WithIndent(*indent), toon.WithDelimiter(d)}
	if *marker {
		opts = append(opts, toon.WithLengthMarker(toon.HashLengthMarker))
	}

	name := fs.Arg(0)
	data, err := readInput(name, stdin)
	if err != nil {
		return fail(stderr, err)
	}

	format, err := detectFormat(*inputFormat, name, data)
	if err != nil {
		return fail(stderr, err)
	}
	v, err := decode(format, data)
	if err != nil {
		return fail(stderr, err)
	}

	out, err := toon.Encode(v, opts...)
	if err != nil {
		return fail(stderr, err)
	}
	if _, err := io.WriteString(stdout, out+"\n"); err != nil {
		return fail(stderr, err)
	}

	if *stats {
		rows := []sizeRow{measure(format, string(data)), measure("toon", out)}
		if err := writeStats(stderr, rows); err != nil {
			return fail(stderr, err)
		}
	}
	return 0
}

func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "toon: %v\n", err)
	return 1
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

// detectFormat resolves "auto" by file extension, then by the first
// non-blank byte: '{' or '[' reads as JSON, anything else as YAML.
func detectFormat(flagValue, name string, data []byte) (string, error) {
	switch strings.ToLower(flagValue) {
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	case formatAuto:
	default:
		return "", fmt.Errorf("unsupported input format %q", flagValue)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return formatJSON, nil
	}
	return formatYAML, nil
}

func decode(format string, data []byte) (toon.Value, error) {
	if format == formatJSON {
		return toon.FromJSON(data)
	}
	return toon.FromYAML(data)
}
