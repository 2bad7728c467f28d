package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"ok only", "2\nok\n\n", []string{"ok"}},
		{"ok with payload", "2\nok\n5\nhello\n\n", []string{"ok", "hello"}},
		{"crlf endings", "2\r\nok\r\n5\r\nhello\r\n\r\n", []string{"ok", "hello"}},
		{"payload with newline", "2\nok\n11\nline1\nline2\n\n", []string{"ok", "line1\nline2"}},
		{"zero-length block", "2\nok\n0\n\n\n", []string{"ok", ""}},
		{"empty frame", "\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.in))
			got, err := ReadBlocks(r, DefaultLimits())
			if err != nil {
				t.Fatalf("ReadBlocks() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if string(got[i]) != tt.want[i] {
					t.Errorf("block[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadBlocks_Sequential(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("2\nok\n1\na\n\n9\nnot_found\n\n"))

	first, err := ReadBlocks(r, DefaultLimits())
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if len(first) != 2 || string(first[1]) != "a" {
		t.Errorf("first frame = %q", first)
	}

	second, err := ReadBlocks(r, DefaultLimits())
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if len(second) != 1 || string(second[0]) != StatusNotFound {
		t.Errorf("second frame = %q", second)
	}

	if _, err := ReadBlocks(r, DefaultLimits()); !errors.Is(err, io.EOF) {
		t.Errorf("third read error = %v, want io.EOF", err)
	}
}

func TestReadBlocks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		limits  Limits
		wantErr error
	}{
		{"eof before frame", "", Limits{}, io.EOF},
		{"eof in header", "2", Limits{}, io.ErrUnexpectedEOF},
		{"eof in block", "2\no", Limits{}, io.ErrUnexpectedEOF},
		{"eof before terminator", "2\nok\n", Limits{}, io.ErrUnexpectedEOF},
		{"eof after block", "2\nok", Limits{}, io.ErrUnexpectedEOF},
		{"non-numeric header", "OK\nhello\n\n", Limits{}, ErrProtocol},
		{"negative length", "-1\n\n", Limits{}, ErrProtocol},
		{"signed length", "+2\nok\n\n", Limits{}, ErrProtocol},
		{"bad terminator", "2\nokX\n", Limits{}, ErrProtocol},
		{"block too large", "5\nhello\n\n", Limits{MaxBlockLen: 4}, ErrLimitExceeded},
		{"too many blocks", "1\na\n1\nb\n\n", Limits{MaxBlocks: 1}, ErrLimitExceeded},
		{"header too long", strings.Repeat("1", 64) + "\n", Limits{}, ErrLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.in))
			_, err := ReadBlocks(r, tt.limits)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadBlocks() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantBlocks   []string
		wantConsumed int
		wantState    ParseState
	}{
		{"complete", "4\nzget\n1\nz\n\nrest", []string{"zget", "z"}, 12, ParseComplete},
		{"crlf", "4\r\nzget\r\n\r\n", []string{"zget"}, 11, ParseComplete},
		{"partial header", "4\nzget\n1", []string{"zget"}, 7, ParsePartial},
		{"partial block", "4\nzget\n5\nboa", []string{"zget"}, 7, ParsePartial},
		{"missing terminator line", "4\nzget\n", []string{"zget"}, 7, ParsePartial},
		{"partial cr", "4\nzget\r", nil, 0, ParsePartial},
		{"bad header", "x\nzget\n\n", nil, 0, ParseError},
		{"bad block end", "1\nab\n\n", nil, 0, ParseError},
		{"empty", "", nil, 0, ParsePartial},
		{"huge length", "9223372036854775807\nabc", nil, 0, ParsePartial},
		{"huge length with newline", "9223372036854775806\nabc\n", nil, 0, ParsePartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, consumed, state := ParseRequest([]byte(tt.in))
			if state != tt.wantState {
				t.Errorf("state = %v, want %v", state, tt.wantState)
			}
			if consumed != tt.wantConsumed {
				t.Errorf("consumed = %d, want %d", consumed, tt.wantConsumed)
			}
			if len(blocks) != len(tt.wantBlocks) {
				t.Fatalf("blocks = %q, want %q", blocks, tt.wantBlocks)
			}
			for i := range blocks {
				if string(blocks[i]) != tt.wantBlocks[i] {
					t.Errorf("block[%d] = %q, want %q", i, blocks[i], tt.wantBlocks[i])
				}
			}
		})
	}
}

func TestParseState_String(t *testing.T) {
	for state, want := range map[ParseState]string{
		ParseError:    "error",
		ParsePartial:  "partial",
		ParseComplete: "complete",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
