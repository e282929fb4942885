package toon

import (
	"errors"
	"io"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidOption        = errors.New("invalid option")
	ErrInvalidIndent        = errors.New("indent must be non-negative")
	ErrUnsupportedDelimiter = errors.New("unsupported delimiter")
	ErrInvalidLengthMarker  = errors.New("invalid length marker")
	ErrUnsupportedType      = errors.New("unsupported type")
	ErrCycle                = errors.New("reference cycle")
	ErrInvalidInput         = errors.New("invalid input")
)

// Encode renders v as TOON. It fails only when an option is invalid.
func Encode(v Value, opts ...Option) (string, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return "", err
	}
	return encodeValue(v, cfg), nil
}

// MarshalString normalizes v with [Normalize] and renders it as TOON.
func MarshalString(v any, opts ...Option) (string, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return "", err
	}
	val, err := Normalize(v)
	if err != nil {
		return "", err
	}
	return encodeValue(val, cfg), nil
}

// Marshal normalizes v with [Normalize] and returns its TOON encoding.
func Marshal(v any, opts ...Option) ([]byte, error) {
	s, err := MarshalString(v, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Write renders v and writes it to w followed by a newline. Nothing is
// written when normalization or an option fails.
func Write(w io.Writer, v any, opts ...Option) error {
	s, err := MarshalString(v, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}
