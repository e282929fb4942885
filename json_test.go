package toon_test

import (
	"strings"
	"testing"

	"github.com/bjaus/toon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   string
		want string
	}{
		"key order":      {in: `{"z":1,"a":2,"m":3}`, want: "z: 1\na: 2\nm: 3"},
		"duplicate keys": {in: `{"a":1,"b":2,"a":3}`, want: "a: 3\nb: 2"},
		"big integer":    {in: `{"n":12345678901234567890}`, want: "n: 12345678901234567890"},
		"min int":        {in: `-9223372036854775808`, want: "-9223372036854775808"},
		"huge integer":   {in: `1e400`, want: "null"},
		"float":          {in: `1.0`, want: "1"},
		"exponent":       {in: `2.5E-8`, want: "2.5e-8"},
		"nested":         {in: `{"a":{"b":[{"c":null}]}}`, want: "a:\n  b[1]{c}:\n    null"},
		"whitespace":     {in: " \n [ true , false ] \n", want: "[2]: true,false"},
		"root string":    {in: `"hello"`, want: "hello"},
		"unicode":        {in: `{"k":"\u00e9\ud83d\ude00"}`, want: "k: é😀"},
		"empty object":   {in: `{}`, want: ""},
		"empty array":    {in: `[]`, want: "[0]:"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, err := toon.FromJSON([]byte(tt.in))
			require.NoError(t, err)
			got, err := toon.Encode(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromJSONInvalid(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty":         "",
		"blank":         "   ",
		"truncated":     `{"a":`,
		"trailing":      `{} x`,
		"two documents": `{} {}`,
		"bad literal":   `tru`,
		"mismatched":    `[1}`,
		"single quotes": `{'a':1}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := toon.FromJSON([]byte(in))
			assert.ErrorIs(t, err, toon.ErrInvalidInput)
		})
	}
}

func TestDecodeJSONReader(t *testing.T) {
	t.Parallel()
	v, err := toon.DecodeJSON(strings.NewReader(`{"items":[{"id":1,"ok":true},{"id":2,"ok":false}]}`))
	require.NoError(t, err)
	got, err := toon.Encode(v, toon.WithDelimiter(toon.Pipe))
	require.NoError(t, err)
	assert.Equal(t, "items[2|]{id|ok}:\n  1|true\n  2|false", got)
}
