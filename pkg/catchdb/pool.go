package catchdb

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Pool methods after Close.
var ErrPoolClosed = NewError("CDB-POOL-5001", "pool is closed")

// Pool hands out exclusive connections to concurrent callers.
//
// A connection that was closed by a failure is replaced by a fresh dial
// the next time its slot is taken.
type Pool struct {
	cfg     Config
	slots   chan *Conn // nil entries are slots that need a dial
	closing chan struct{}
	once    sync.Once
}

// NewPool dials size connections. If any dial fails, the connections
// opened so far are closed and the error is returned.
func NewPool(ctx context.Context, cfg Config, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}
	p := &Pool{
		cfg:     cfg,
		slots:   make(chan *Conn, size),
		closing: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		c, err := Dial(ctx, cfg)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.slots <- c
	}
	return p, nil
}

// Get takes a connection from the pool, blocking until one is free.
func (p *Pool) Get(ctx context.Context) (*Conn, error) {
	select {
	case <-p.closing:
		return nil, ErrPoolClosed
	default:
	}

	select {
	case c := <-p.slots:
		if c != nil && !c.Closed() {
			return c, nil
		}
		c, err := Dial(ctx, p.cfg)
		if err != nil {
			p.slots <- nil
			return nil, err
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.closing:
		return nil, ErrPoolClosed
	}
}

// Put returns a connection taken with Get.
func (p *Pool) Put(c *Conn) {
	p.slots <- c
	select {
	case <-p.closing:
		p.drain()
	default:
	}
}

// Do runs one command on a pooled connection.
func (p *Pool) Do(ctx context.Context, args ...string) (*Reply, error) {
	c, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Put(c)
	return c.Do(ctx, args...)
}

// Process runs one command line on a pooled connection.
func (p *Pool) Process(ctx context.Context, line string) (string, error) {
	c, err := p.Get(ctx)
	if err != nil {
		return "", err
	}
	defer p.Put(c)
	return c.Process(ctx, line)
}

// Close closes idle connections and marks the pool closed. Connections
// still checked out are closed when they are put back.
func (p *Pool) Close() error {
	var err error
	p.once.Do(func() {
		close(p.closing)
		err = p.drain()
	})
	return err
}

func (p *Pool) drain() error {
	var errs []error
	for {
		select {
		case c := <-p.slots:
			if c == nil {
				continue
			}
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}
