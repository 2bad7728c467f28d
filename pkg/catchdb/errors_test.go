package catchdb

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", ErrClosed, "[CDB-CONN-5005] connection is closed"},
		{"details", ErrUnknownCommand.WithDetails("foo"), "[CDB-ARG-4002] unknown command: foo"},
		{"cause", ErrTransport.Wrap(io.ErrUnexpectedEOF), "[CDB-CONN-5003] transport error: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("call: %w", ErrTransport.Wrap(io.EOF))

	if !errors.Is(err, ErrTransport) {
		t.Error("wrapped error should match ErrTransport")
	}
	if !errors.Is(err, io.EOF) {
		t.Error("wrapped error should match its cause")
	}
	if errors.Is(err, ErrPeerClosed) {
		t.Error("wrapped error should not match a different code")
	}
}

func TestError_CopiesDoNotMutateSentinel(t *testing.T) {
	_ = ErrWrongArity.WithDetails("x").Wrap(io.EOF)

	if ErrWrongArity.Details != "" || ErrWrongArity.Cause != nil {
		t.Errorf("sentinel mutated: %+v", ErrWrongArity)
	}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(ErrPeerClosed); got != "CDB-CONN-5004" {
		t.Errorf("ErrorCode() = %q", got)
	}
	if got := ErrorCode(io.EOF); got != "" {
		t.Errorf("ErrorCode(io.EOF) = %q, want empty", got)
	}
}

func TestErrorCodes_Unique(t *testing.T) {
	all := []*Error{
		ErrSocketCreateFailed, ErrConnectFailed, ErrTransport, ErrPeerClosed, ErrClosed,
		ErrEmptyCommand, ErrUnknownCommand, ErrWrongArity,
		ErrNotFound, ErrClientError, ErrServerError, ErrServerFail, ErrBadReply,
		ErrPoolClosed,
	}

	seen := make(map[string]bool)
	for _, e := range all {
		if seen[e.Code] {
			t.Errorf("duplicate code %s", e.Code)
		}
		seen[e.Code] = true
		if !strings.HasPrefix(e.Code, "CDB-") {
			t.Errorf("code %s lacks CDB- prefix", e.Code)
		}
	}
}
