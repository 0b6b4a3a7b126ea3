// Package codec resolves IANA text-encoding names and converts payload
// bytes to and from UTF-8 strings. It is the registry the client validates
// its Encoding setting against.
package codec

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding reports an encoding name the registry cannot serve.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Lookup resolves an IANA charset name to its Encoding. Matching is
// case-insensitive and includes registered aliases.
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if enc == nil {
		// Listed in the index but not backed by an implementation.
		return nil, fmt.Errorf("%w: %q has no registered codec", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Decode converts data from the named encoding to a UTF-8 string.
func Decode(name string, data []byte) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(decoded), nil
}

// Encode converts a UTF-8 string to bytes in the named encoding.
func Encode(name, text string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return encoded, nil
}
