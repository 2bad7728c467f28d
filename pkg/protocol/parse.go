package protocol

import (
	"bytes"
	"strconv"
)

// ParseState reports how far ParseRequest got through a buffer.
type ParseState int

const (
	// ParseError means the buffer is not a valid frame.
	ParseError ParseState = iota
	// ParsePartial means more bytes are needed.
	ParsePartial
	// ParseComplete means a whole frame was parsed.
	ParseComplete
)

func (s ParseState) String() string {
	switch s {
	case ParsePartial:
		return "partial"
	case ParseComplete:
		return "complete"
	default:
		return "error"
	}
}

// ParseRequest parses one frame from the start of buf.
//
// On ParseComplete, consumed is the number of bytes that made up the frame
// including its terminator. On ParsePartial the parsed prefix is returned
// and consumed covers only whole blocks, so the caller can resume with
// buf[consumed:] once more data arrives.
func ParseRequest(buf []byte) (blocks [][]byte, consumed int, state ParseState) {
	pos := 0
	for pos < len(buf) {
		nl := bytes.IndexByte(buf[pos:], '\n')
		if nl < 0 {
			return blocks, pos, ParsePartial
		}

		line := buf[pos : pos+nl]
		if len(line) == 0 || (len(line) == 1 && line[0] == '\r') {
			return blocks, pos + nl + 1, ParseComplete
		}

		line = bytes.TrimSuffix(line, []byte("\r"))
		if line[0] < '0' || line[0] > '9' {
			return blocks, pos, ParseError
		}
		size, err := strconv.Atoi(string(line))
		if err != nil || size < 0 {
			return blocks, pos, ParseError
		}

		start := pos + nl + 1
		if size > len(buf)-start {
			return blocks, pos, ParsePartial
		}
		end := start + size
		switch {
		case end >= len(buf):
			return blocks, pos, ParsePartial
		case buf[end] == '\n':
			blocks = append(blocks, buf[start:end])
			pos = end + 1
		case buf[end] != '\r':
			return blocks, pos, ParseError
		case end+1 >= len(buf):
			return blocks, pos, ParsePartial
		case buf[end+1] == '\n':
			blocks = append(blocks, buf[start:end])
			pos = end + 2
		default:
			return blocks, pos, ParseError
		}
	}
	return blocks, pos, ParsePartial
}
