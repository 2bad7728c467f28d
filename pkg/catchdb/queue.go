package catchdb

import (
	"context"
	"strconv"
)

// Queue commands return the raw reply; the server defines their results.

// QSize sends qsize.
func (c *Conn) QSize(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qsize", name)
}

// QFront sends qfront.
func (c *Conn) QFront(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qfront", name)
}

// QBack sends qback.
func (c *Conn) QBack(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qback", name)
}

// QPush is QPushFront.
func (c *Conn) QPush(ctx context.Context, name, item string) (*Reply, error) {
	return c.QPushFront(ctx, name, item)
}

// QPushFront sends qpush_front.
func (c *Conn) QPushFront(ctx context.Context, name, item string) (*Reply, error) {
	return c.Do(ctx, "qpush_front", name, item)
}

// QPushBack sends qpush_back.
func (c *Conn) QPushBack(ctx context.Context, name, item string) (*Reply, error) {
	return c.Do(ctx, "qpush_back", name, item)
}

// QPop is QPopBack.
func (c *Conn) QPop(ctx context.Context, name string) (*Reply, error) {
	return c.QPopBack(ctx, name)
}

// QPopFront sends qpop_front.
func (c *Conn) QPopFront(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qpop_front", name)
}

// QPopBack sends qpop_back.
func (c *Conn) QPopBack(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qpop_back", name)
}

// QClear sends qclear.
func (c *Conn) QClear(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qclear", name)
}

// QList sends qlist.
func (c *Conn) QList(ctx context.Context, name string) (*Reply, error) {
	return c.Do(ctx, "qlist", name)
}

// QSlice sends qslice for the range [begin, end].
func (c *Conn) QSlice(ctx context.Context, name string, begin, end int) (*Reply, error) {
	return c.Do(ctx, "qslice", name, strconv.Itoa(begin), strconv.Itoa(end))
}

// QGet sends qget for the item at index.
func (c *Conn) QGet(ctx context.Context, name string, index int) (*Reply, error) {
	return c.Do(ctx, "qget", name, strconv.Itoa(index))
}
