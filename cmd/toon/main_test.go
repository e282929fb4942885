package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  string
	}{
		"json stdin": {
			stdin: `{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`,
			want:  "users[2]{id,name}:\n  1,Alice\n  2,Bob\n",
		},
		"yaml stdin": {
			stdin: "a: 1\nb: [x, y]\n",
			want:  "a: 1\nb[2]: x,y\n",
		},
		"dash reads stdin": {
			stdin: `[1,2,3]`,
			args:  []string{"-"},
			want:  "[3]: 1,2,3\n",
		},
		"all options": {
			stdin: `{"a":{"b":[1,2]}}`,
			args:  []string{"-indent", "4", "-delimiter", "pipe", "-length-marker"},
			want:  "a:\n    b[#2|]: 1|2\n",
		},
		"tab delimiter": {
			stdin: `{"t":["x","y"]}`,
			args:  []string{"-delimiter", "tab"},
			want:  "t[2\t]: x\ty\n",
		},
		"forced yaml": {
			stdin: `{"a": 1}`,
			args:  []string{"-input", "yml"},
			want:  "a: 1\n",
		},
		"empty object": {
			stdin: `{}`,
			want:  "\n",
		},
		"empty yaml": {
			stdin: "",
			want:  "null\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runCLI(t, tt.stdin, tt.args...)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRunFile(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name    string
		content string
		want    string
	}{
		"json extension": {name: "in.json", content: `{"k":"v"}`, want: "k: v\n"},
		"yml extension":  {name: "in.yml", content: "[1, 2]\n", want: "[2]: 1,2\n"},
		"yaml extension": {name: "in.YAML", content: "- a: 1\n", want: "[1]{a}:\n  1\n"},
		"sniffed":        {name: "in.txt", content: "  [true]", want: "[1]: true\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, tt.name, tt.content)
			code, stdout, stderr := runCLI(t, "", path)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		"invalid json": {
			stdin:    `{"a":`,
			wantCode: 1,
			wantErr:  "toon: invalid input: json:",
		},
		"yaml forced to json": {
			stdin:    "a: 1\n",
			args:     []string{"-input", "json"},
			wantCode: 1,
			wantErr:  "toon: invalid input: json:",
		},
		"invalid yaml": {
			stdin:    "a: [1\n",
			wantCode: 1,
			wantErr:  "toon: invalid input: yaml:",
		},
		"unknown input format": {
			args:     []string{"-input", "xml"},
			wantCode: 1,
			wantErr:  `toon: unsupported input format "xml"`,
		},
		"bad delimiter": {
			args:     []string{"-delimiter", "semicolon"},
			wantCode: 1,
			wantErr:  "toon: unsupported delimiter",
		},
		"negative indent": {
			stdin:    `[]`,
			args:     []string{"-indent", "-1"},
			wantCode: 1,
			wantErr:  "indent must be non-negative",
		},
		"missing file": {
			args:     []string{filepath.Join("no", "such", "file.json")},
			wantCode: 1,
			wantErr:  "toon: read input:",
		},
		"too many args": {
			args:     []string{"a.json", "b.json"},
			wantCode: 2,
			wantErr:  "usage: toon [flags] [file]",
		},
		"unknown flag": {
			args:     []string{"-bogus"},
			wantCode: 2,
			wantErr:  "flag provided but not defined: -bogus",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()
	code, stdout, stderr := runCLI(t, "", "-h")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "usage: toon [flags] [file]")
	assert.Contains(t, stderr, "-length-marker")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()
	code, stdout, _ := runCLI(t, "", "-version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "toon "+version+"\n", stdout)
}

func TestRunStats(t *testing.T) {
	t.Parallel()
	code, stdout, stderr := runCLI(t, `{"a":1}`, "-stats")
	require.Equal(t, 0, code)
	assert.Equal(t, "a: 1\n", stdout)
	want := "FORMAT  BYTES  LINES  WIDEST\n" +
		"------  -----  -----  ------\n" +
		"json        7      1       7\n" +
		"toon        4      1       4\n" +
		"toon is 57.1% of json\n"
	assert.Equal(t, want, stderr)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		flag string
		name string
		data string
		want string
	}{
		"explicit json":       {flag: "JSON", data: "a: 1", want: formatJSON},
		"explicit yaml":       {flag: "yaml", data: "{}", want: formatYAML},
		"extension wins":      {flag: formatAuto, name: "x.yaml", data: "{}", want: formatYAML},
		"object":              {flag: formatAuto, data: "\n {\"a\":1}", want: formatJSON},
		"array":               {flag: formatAuto, data: "[1]", want: formatJSON},
		"plain text":          {flag: formatAuto, data: "a: 1", want: formatYAML},
		"json scalar as yaml": {flag: formatAuto, data: "42", want: formatYAML},
		"empty":               {flag: formatAuto, data: "", want: formatYAML},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := detectFormat(tt.flag, tt.name, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want sizeRow
	}{
		"empty":          {in: "", want: sizeRow{name: "x"}},
		"trailing lines": {in: "ab\ncd\n\n", want: sizeRow{name: "x", bytes: 5, lines: 2, widest: 2}},
		"wide runes":     {in: "k: 日本\nz", want: sizeRow{name: "x", bytes: 11, lines: 2, widest: 7}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, measure("x", tt.in))
		})
	}
}

func TestWriteStatsSingleRow(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, []sizeRow{{name: "toon", bytes: 12, lines: 3, widest: 5}}))
	assert.Equal(t, "FORMAT  BYTES  LINES  WIDEST\n------  -----  -----  ------\ntoon       12      3       5\n", buf.String())
}
