// Package codec escapes byte strings so they survive a NUL-terminated
// C string interface.
//
// The sentinel byte 'z' introduces a two-byte escape: "z0" stands for a
// NUL byte and "zz" for a literal 'z'. All other bytes pass through
// unchanged, so encoded text stays readable and grows by one byte per
// escaped occurrence.
//
// The sentinel is not reserved beyond its own escape rule. Data written
// by other producers must follow exactly this scheme to decode.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

// Sentinel introduces an escape sequence.
const Sentinel = 'z'

// escapable lists the bytes Encode rewrites.
const escapable = "\x00z"

// nulFollower follows the sentinel to encode a NUL byte.
const nulFollower = '0'

// DecodeError reports input that no call to Encode could have produced.
type DecodeError struct {
	// Offset is the index of the offending sentinel.
	Offset int

	// Follower is the byte after the sentinel, or -1 when input ended.
	Follower int
}

func (e *DecodeError) Error() string {
	if e.Follower < 0 {
		return fmt.Sprintf("codec: lone sentinel at end of input (offset %d)", e.Offset)
	}
	return fmt.Sprintf("codec: invalid escape %q at offset %d", []byte{Sentinel, byte(e.Follower)}, e.Offset)
}

// Unwrap allows errors.Is(err, domain.ErrMalformedEncoding).
func (e *DecodeError) Unwrap() error {
	return domain.ErrMalformedEncoding
}

// Encode escapes b into a NUL-free string. It never fails.
func Encode(b []byte) string {
	escapes := bytes.Count(b, []byte{0}) + bytes.Count(b, []byte{Sentinel})
	if escapes == 0 {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + escapes)
	for len(b) > 0 {
		i := bytes.IndexAny(b, escapable)
		if i < 0 {
			sb.Write(b)
			break
		}
		sb.Write(b[:i])
		sb.WriteByte(Sentinel)
		if b[i] == 0 {
			sb.WriteByte(nulFollower)
		} else {
			sb.WriteByte(Sentinel)
		}
		b = b[i+1:]
	}
	return sb.String()
}

// Decode reverses Encode. Malformed input yields a *DecodeError and no data.
func Decode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	offset := 0
	for len(s) > 0 {
		i := strings.IndexByte(s, Sentinel)
		if i < 0 {
			out = append(out, s...)
			break
		}
		out = append(out, s[:i]...)
		if i+1 >= len(s) {
			return nil, &DecodeError{Offset: offset + i, Follower: -1}
		}
		switch s[i+1] {
		case nulFollower:
			out = append(out, 0)
		case Sentinel:
			out = append(out, Sentinel)
		default:
			return nil, &DecodeError{Offset: offset + i, Follower: int(s[i+1])}
		}
		s = s[i+2:]
		offset += i + 2
	}
	return out, nil
}

// EncodeString is Encode for string input.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// DecodeString is Decode returning a string.
func DecodeString(s string) (string, error) {
	b, err := Decode(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
