package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Protocol limits applied by ReadBlocks.
const (
	// DefaultMaxBlockLen bounds a single block (512KB).
	DefaultMaxBlockLen = 512 * 1024

	// DefaultMaxBlocks bounds the number of blocks in one frame.
	DefaultMaxBlocks = 4096

	// maxHeaderLen bounds a length line, "<digits>\r\n".
	maxHeaderLen = 32
)

var (
	ErrProtocol      = errors.New("protocol: malformed frame")
	ErrLimitExceeded = errors.New("protocol: limit exceeded")
)

// Limits constrains memory use while reading frames.
type Limits struct {
	MaxBlockLen int
	MaxBlocks   int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxBlockLen: DefaultMaxBlockLen,
		MaxBlocks:   DefaultMaxBlocks,
	}
}

// ReadBlocks reads one complete frame from r.
//
// It returns io.EOF if the stream ends before the first byte of the frame
// and io.ErrUnexpectedEOF if it ends inside the frame. Both "\n" and
// "\r\n" line endings are accepted.
func ReadBlocks(r *bufio.Reader, limits Limits) ([][]byte, error) {
	if limits.MaxBlockLen <= 0 {
		limits.MaxBlockLen = DefaultMaxBlockLen
	}
	if limits.MaxBlocks <= 0 {
		limits.MaxBlocks = DefaultMaxBlocks
	}

	var blocks [][]byte
	first := true
	for {
		line, err := readLine(r, maxHeaderLen)
		if err != nil {
			if errors.Is(err, io.EOF) && !first {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		first = false

		if len(line) == 0 {
			return blocks, nil
		}

		n, err := strconv.Atoi(string(line))
		if err != nil || n < 0 || line[0] == '+' || line[0] == '-' {
			return nil, fmt.Errorf("%w: invalid block length %q", ErrProtocol, line)
		}
		if n > limits.MaxBlockLen {
			return nil, fmt.Errorf("%w: block length %d exceeds limit %d", ErrLimitExceeded, n, limits.MaxBlockLen)
		}
		if len(blocks) >= limits.MaxBlocks {
			return nil, fmt.Errorf("%w: more than %d blocks", ErrLimitExceeded, limits.MaxBlocks)
		}

		block := make([]byte, n)
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, unexpected(err)
		}
		if err := readTerminator(r); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
}

// readLine reads a line without its line ending. A partial line at EOF is
// reported as io.ErrUnexpectedEOF.
func readLine(r *bufio.Reader, maxLen int) ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		buf = append(buf, frag...)
		if len(buf) > maxLen+2 {
			return nil, fmt.Errorf("%w: header line exceeds %d bytes", ErrLimitExceeded, maxLen)
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) && len(buf) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	buf = bytes.TrimSuffix(buf, []byte("\n"))
	buf = bytes.TrimSuffix(buf, []byte("\r"))
	return buf, nil
}

func readTerminator(r *bufio.Reader) error {
	c, err := r.ReadByte()
	if err != nil {
		return unexpected(err)
	}
	if c == '\n' {
		return nil
	}
	if c != '\r' {
		return fmt.Errorf("%w: missing block terminator", ErrProtocol)
	}
	c, err = r.ReadByte()
	if err != nil {
		return unexpected(err)
	}
	if c != '\n' {
		return fmt.Errorf("%w: missing block terminator", ErrProtocol)
	}
	return nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
