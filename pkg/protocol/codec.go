package protocol

import (
	"strconv"
	"strings"
)

// Reply status words written by the server as the first reply block.
const (
	StatusOK          = "ok"
	StatusNotFound    = "not_found"
	StatusError       = "error"
	StatusFail        = "fail"
	StatusClientError = "client_error"
)

// Tokenize splits a command line on single spaces.
//
// Consecutive spaces yield empty tokens; they are kept so that Encode
// turns them into zero-length blocks.
func Tokenize(line string) []string {
	return strings.Split(line, " ")
}

// Encode serializes blocks into a request frame.
func Encode(blocks [][]byte) []byte {
	buf := make([]byte, 0, EncodedLen(blocks))
	for _, b := range blocks {
		buf = AppendBlock(buf, b)
	}
	return append(buf, '\n')
}

// EncodeStrings is Encode for string arguments.
func EncodeStrings(args ...string) []byte {
	size := 1
	for _, a := range args {
		size += digits(len(a)) + len(a) + 2
	}

	buf := make([]byte, 0, size)
	for _, a := range args {
		buf = strconv.AppendInt(buf, int64(len(a)), 10)
		buf = append(buf, '\n')
		buf = append(buf, a...)
		buf = append(buf, '\n')
	}
	return append(buf, '\n')
}

// AppendBlock appends one length-prefixed block to dst.
func AppendBlock(dst, b []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, '\n')
	dst = append(dst, b...)
	return append(dst, '\n')
}

// EncodedLen returns the exact size of Encode(blocks).
func EncodedLen(blocks [][]byte) int {
	n := 1 // terminator
	for _, b := range blocks {
		n += digits(len(b)) + 1 + len(b) + 1
	}
	return n
}

// Decode extracts the payload lines of a raw reply buffer.
//
// At most one trailing newline is stripped, the rest is split on newline
// and every odd-indexed line is returned. Header lines are not inspected.
// A buffer with fewer than two lines yields nil. Truncated input is not an
// error: whatever odd-indexed lines exist are returned.
func Decode(buf []byte) []string {
	s := strings.TrimSuffix(string(buf), "\n")
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return nil
	}

	out := make([]string, 0, len(lines)/2)
	for i := 1; i < len(lines); i += 2 {
		out = append(out, lines[i])
	}
	return out
}

// DecodeString is Decode joined with newlines.
func DecodeString(buf []byte) string {
	return strings.Join(Decode(buf), "\n")
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
