package catchdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// Conn is a single connection to a CatchDB server.
//
// A Conn is open from Dial until Close. It serializes requests: only one
// round trip is in flight at a time. After a transport failure or a peer
// close the Conn is closed and every later call returns ErrClosed.
type Conn struct {
	cfg Config
	nc  net.Conn
	br  *bufio.Reader

	readTimeout  atomic.Int64
	writeTimeout atomic.Int64

	mu        sync.Mutex // one request in flight
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error

	bytesIn int
}

// Dial opens a connection to cfg.Addr().
//
// Socket creation failures return ErrSocketCreateFailed; resolution and
// connect failures return ErrConnectFailed. No socket is left open on error.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	cfg = cfg.withDefaults()

	d := net.Dialer{Timeout: cfg.DialTimeout}
	nc, err := d.DialContext(ctx, "tcp", cfg.Addr())
	if err != nil {
		cfg.Logger.Debug("catchdb dial failed", "addr", cfg.Addr(), "error", err)
		return nil, classifyDialError(err)
	}

	c := &Conn{cfg: cfg, nc: nc}
	c.br = bufio.NewReader(countingReader{c})
	c.SetTimeouts(cfg.ReadTimeout, cfg.WriteTimeout)

	cfg.Logger.Debug("catchdb connected",
		"addr", cfg.Addr(),
		"local", nc.LocalAddr().String(),
		"read_mode", string(cfg.ReadMode),
	)
	return c, nil
}

func classifyDialError(err error) error {
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) && sysErr.Syscall == "socket" {
		return ErrSocketCreateFailed.Wrap(err)
	}
	return ErrConnectFailed.Wrap(err)
}

// RemoteAddr returns the server address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.nc.RemoteAddr()
}

// SetTimeouts changes the read and write timeouts for later requests.
// Zero disables a timeout. It is safe to call while a request is in flight.
func (c *Conn) SetTimeouts(read, write time.Duration) {
	c.readTimeout.Store(int64(read))
	c.writeTimeout.Store(int64(write))
}

// Timeouts returns the current read and write timeouts.
func (c *Conn) Timeouts() (read, write time.Duration) {
	return time.Duration(c.readTimeout.Load()), time.Duration(c.writeTimeout.Load())
}

// Process sends a command line and returns the decoded reply text.
//
// The line is split on single spaces; empty tokens are sent as empty
// blocks. The result is the reply lines joined with newlines, starting with
// the status word. Reply statuses are not interpreted.
func (c *Conn) Process(ctx context.Context, line string) (string, error) {
	if line == "" {
		return "", ErrEmptyCommand
	}
	lines, err := c.roundTrip(ctx, protocol.Tokenize(line))
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Do sends pre-split arguments and returns the reply.
func (c *Conn) Do(ctx context.Context, args ...string) (*Reply, error) {
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	lines, err := c.roundTrip(ctx, args)
	if err != nil {
		return nil, err
	}
	return newReply(lines), nil
}

// Close closes the socket. It is idempotent and may be called while a
// request is in flight, which then fails.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.nc.Close()
		c.cfg.Logger.Debug("catchdb connection closed", "addr", c.cfg.Addr())
	})
	return c.closeErr
}

// Closed reports whether the connection has been closed.
func (c *Conn) Closed() bool {
	return c.closed.Load()
}

func (c *Conn) roundTrip(ctx context.Context, args []string) (lines []string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame := protocol.EncodeStrings(args...)
	reqID := ulid.Make().String()
	start := time.Now()
	c.bytesIn = 0

	log := c.cfg.Logger.With("request_id", reqID, "command", args[0])
	log.Debug("catchdb request", "blocks", len(args), "bytes", len(frame))

	defer func() {
		if c.cfg.Observer != nil {
			c.cfg.Observer.ObserveCommand(args[0], time.Since(start), len(frame), c.bytesIn, err)
		}
		if err != nil {
			log.Debug("catchdb request failed", "error", err, "duration", time.Since(start))
			return
		}
		log.Debug("catchdb reply", "lines", len(lines), "bytes", c.bytesIn, "duration", time.Since(start))
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = c.nc.SetDeadline(time.Now())
	})
	defer stop()

	if err := c.write(ctx, frame); err != nil {
		return nil, c.fail(ctx, err)
	}

	lines, err = c.read(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			c.Close()
			return nil, ErrPeerClosed
		}
		return nil, c.fail(ctx, err)
	}
	return lines, nil
}

func (c *Conn) write(ctx context.Context, frame []byte) error {
	if err := c.nc.SetWriteDeadline(deadline(ctx, time.Duration(c.writeTimeout.Load()))); err != nil {
		return err
	}
	n, err := c.nc.Write(frame)
	if err != nil {
		return err
	}
	if n < len(frame) {
		return io.ErrShortWrite
	}
	return nil
}

// read returns io.EOF only when the peer closed before sending anything.
func (c *Conn) read(ctx context.Context) ([]string, error) {
	if err := c.nc.SetReadDeadline(deadline(ctx, time.Duration(c.readTimeout.Load()))); err != nil {
		return nil, err
	}

	if c.cfg.ReadMode == ReadSingle {
		buf := make([]byte, c.cfg.ReadSize)
		n, err := c.nc.Read(buf)
		c.bytesIn = n
		if n == 0 {
			if err == nil || errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, err
		}
		return protocol.Decode(buf[:n]), nil
	}

	blocks, err := protocol.ReadBlocks(c.br, c.cfg.Limits)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = string(b)
	}
	return lines, nil
}

// fail closes the connection and wraps err as a transport error.
func (c *Conn) fail(ctx context.Context, err error) error {
	if c.closed.Load() {
		return ErrClosed.Wrap(err)
	}
	c.Close()
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return ErrTransport.Wrap(err)
}

// deadline combines a relative timeout with the context deadline.
// The zero time means no deadline.
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	var t time.Time
	if timeout > 0 {
		t = time.Now().Add(timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (t.IsZero() || dl.Before(t)) {
		t = dl
	}
	return t
}

// countingReader counts bytes read from the socket for the observer.
type countingReader struct {
	c *Conn
}

func (r countingReader) Read(p []byte) (int, error) {
	n, err := r.c.nc.Read(p)
	r.c.bytesIn += n
	return n, err
}
