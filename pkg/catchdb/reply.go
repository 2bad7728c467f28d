package catchdb

import (
	"strconv"
	"strings"

	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// Reply is one decoded server reply.
type Reply struct {
	// Status is the first reply line: ok, not_found, error, fail or
	// client_error. It is empty if the reply had no lines.
	Status string
	// Data holds the payload lines after the status.
	Data []string
}

func newReply(lines []string) *Reply {
	if len(lines) == 0 {
		return &Reply{}
	}
	return &Reply{Status: lines[0], Data: lines[1:]}
}

// OK reports whether the server answered with status ok.
func (r *Reply) OK() bool {
	return r.Status == protocol.StatusOK
}

// Text returns the status and payload lines joined with newlines, the same
// text Process returns.
func (r *Reply) Text() string {
	if r.Status == "" && len(r.Data) == 0 {
		return ""
	}
	return strings.Join(append([]string{r.Status}, r.Data...), "\n")
}

// Err maps a non-ok status to an error. The first payload line, if any,
// is used as details.
func (r *Reply) Err() error {
	var base *Error
	switch r.Status {
	case protocol.StatusOK:
		return nil
	case protocol.StatusNotFound:
		base = ErrNotFound
	case protocol.StatusClientError:
		base = ErrClientError
	case protocol.StatusError:
		base = ErrServerError
	case protocol.StatusFail:
		base = ErrServerFail
	default:
		return ErrBadReply.WithDetails("status " + strconv.Quote(r.Status))
	}
	if len(r.Data) > 0 {
		return base.WithDetails(r.Data[0])
	}
	return base
}

// Int parses the first payload line as an integer.
func (r *Reply) Int() (int64, error) {
	if err := r.Err(); err != nil {
		return 0, err
	}
	if len(r.Data) == 0 {
		return 0, ErrBadReply.WithDetails("missing integer")
	}
	n, err := strconv.ParseInt(r.Data[0], 10, 64)
	if err != nil {
		return 0, ErrBadReply.WithDetails("not an integer: " + strconv.Quote(r.Data[0]))
	}
	return n, nil
}

// Value returns the first payload line.
func (r *Reply) Value() (string, error) {
	if err := r.Err(); err != nil {
		return "", err
	}
	if len(r.Data) == 0 {
		return "", ErrBadReply.WithDetails("missing value")
	}
	return r.Data[0], nil
}

// Strings returns all payload lines.
func (r *Reply) Strings() ([]string, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r.Data, nil
}

// Member is one sorted-set entry.
type Member struct {
	Key   string `json:"key" yaml:"key"`
	Score int64  `json:"score" yaml:"score"`
}

// Members parses the payload as key/score pairs.
func (r *Reply) Members() ([]Member, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if len(r.Data)%2 != 0 {
		return nil, ErrBadReply.WithDetails("odd number of key/score lines")
	}

	members := make([]Member, 0, len(r.Data)/2)
	for i := 0; i < len(r.Data); i += 2 {
		score, err := strconv.ParseInt(r.Data[i+1], 10, 64)
		if err != nil {
			return nil, ErrBadReply.WithDetails("score not an integer: " + strconv.Quote(r.Data[i+1]))
		}
		members = append(members, Member{Key: r.Data[i], Score: score})
	}
	return members, nil
}
