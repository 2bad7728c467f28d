// Package catchdbtest provides an in-process CatchDB server for tests.
package catchdbtest

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// ErrHangUp makes the server close the connection without replying.
var ErrHangUp = errors.New("catchdbtest: hang up")

// HandlerFunc answers one request. Returning an error closes the connection.
type HandlerFunc func(w io.Writer, args []string) error

// Server is a TCP server speaking the CatchDB frame format.
type Server struct {
	ln      net.Listener
	handler HandlerFunc

	mu       sync.Mutex
	requests [][]string
	conns    map[net.Conn]struct{}
	closed   bool

	wg sync.WaitGroup
}

// NewServer starts a server on a random local port. It is closed when the
// test ends.
func NewServer(t testing.TB, h HandlerFunc) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("catchdbtest: listen: %v", err)
	}

	s := &Server{
		ln:      ln,
		handler: h,
		conns:   make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()

	t.Cleanup(s.Close)
	return s
}

// Addr returns host:port of the listener.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Host returns the listener host.
func (s *Server) Host() string {
	return s.ln.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the listener port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Requests returns the arguments of every request received so far.
func (s *Server) Requests() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Frames returns the received requests re-encoded as wire frames.
func (s *Server) Frames() [][]byte {
	reqs := s.Requests()
	out := make([][]byte, len(reqs))
	for i, args := range reqs {
		out[i] = protocol.EncodeStrings(args...)
	}
	return out
}

// OpenConns returns the number of client connections still open.
func (s *Server) OpenConns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close stops the listener and closes every connection.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.ln.Close()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			c.Close()
			return
		}
		s.conns[c] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(c)
	}
}

func (s *Server) handle(c net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		c.Close()
	}()

	r := bufio.NewReader(c)
	for {
		blocks, err := protocol.ReadBlocks(r, protocol.DefaultLimits())
		if err != nil {
			return
		}

		args := make([]string, len(blocks))
		for i, b := range blocks {
			args[i] = string(b)
		}
		s.mu.Lock()
		s.requests = append(s.requests, args)
		s.mu.Unlock()

		if err := s.handler(c, args); err != nil {
			return
		}
	}
}

// WriteReply writes a reply frame: the status block, then data blocks.
func WriteReply(w io.Writer, status string, data ...string) error {
	_, err := w.Write(protocol.EncodeStrings(append([]string{status}, data...)...))
	return err
}

// Reply answers every request with the same status and data.
func Reply(status string, data ...string) HandlerFunc {
	return func(w io.Writer, _ []string) error {
		return WriteReply(w, status, data...)
	}
}

// Raw answers every request with raw bytes.
func Raw(payload string) HandlerFunc {
	return func(w io.Writer, _ []string) error {
		_, err := io.WriteString(w, payload)
		return err
	}
}

// HangUp closes the connection on the first request.
func HangUp() HandlerFunc {
	return func(io.Writer, []string) error {
		return ErrHangUp
	}
}

// Echo answers ok followed by the request arguments after the name.
func Echo() HandlerFunc {
	return func(w io.Writer, args []string) error {
		return WriteReply(w, protocol.StatusOK, args[1:]...)
	}
}

// ZSetStore is a small in-memory sorted-set server for client tests. It
// understands zset, zget, zsize, zdel, ztopn and zgetall; other commands
// get client_error.
type ZSetStore struct {
	mu   sync.Mutex
	sets map[string]map[string]int64
}

// NewZSetStore returns an empty store.
func NewZSetStore() *ZSetStore {
	return &ZSetStore{sets: make(map[string]map[string]int64)}
}

// Handler returns the store as a HandlerFunc.
func (z *ZSetStore) Handler() HandlerFunc {
	return func(w io.Writer, args []string) error {
		status, data := z.exec(args)
		return WriteReply(w, status, data...)
	}
}

func (z *ZSetStore) exec(args []string) (string, []string) {
	z.mu.Lock()
	defer z.mu.Unlock()

	arity := map[string]int{"zset": 4, "zget": 3, "zsize": 2, "zdel": 3, "ztopn": 3, "zgetall": 2}
	n, ok := arity[args[0]]
	if !ok {
		return protocol.StatusClientError, []string{"Unknown command"}
	}
	if len(args) != n {
		return protocol.StatusClientError, []string{"Wrong number of arguments"}
	}

	set := z.sets[args[1]]
	switch args[0] {
	case "zset":
		score, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return protocol.StatusClientError, []string{"score should be an integer"}
		}
		if set == nil {
			set = make(map[string]int64)
			z.sets[args[1]] = set
		}
		set[args[2]] = score
		return protocol.StatusOK, nil
	case "zget":
		score, ok := set[args[2]]
		if !ok {
			return protocol.StatusNotFound, nil
		}
		return protocol.StatusOK, []string{strconv.FormatInt(score, 10)}
	case "zsize":
		return protocol.StatusOK, []string{strconv.Itoa(len(set))}
	case "zdel":
		if _, ok := set[args[2]]; !ok {
			return protocol.StatusNotFound, nil
		}
		delete(set, args[2])
		return protocol.StatusOK, nil
	case "ztopn":
		limit, err := strconv.Atoi(args[2])
		if err != nil {
			return protocol.StatusClientError, []string{"number should be an integer"}
		}
		return protocol.StatusOK, z.ranked(set, limit)
	default: // zgetall
		return protocol.StatusOK, z.ranked(set, len(set))
	}
}

// ranked returns key/score lines ordered by score descending, then key.
func (z *ZSetStore) ranked(set map[string]int64, limit int) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(set, keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	if limit < len(keys) {
		keys = keys[:limit]
	}

	out := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, strconv.FormatInt(set[k], 10))
	}
	return out
}

func less(set map[string]int64, a, b string) bool {
	if set[a] != set[b] {
		return set[a] > set[b]
	}
	return a < b
}
