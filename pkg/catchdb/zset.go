package catchdb

import (
	"context"
	"strconv"
)

// ZSet sets the score of key in sorted set name.
func (c *Conn) ZSet(ctx context.Context, name, key string, score int64) error {
	r, err := c.Do(ctx, "zset", name, key, strconv.FormatInt(score, 10))
	if err != nil {
		return err
	}
	return r.Err()
}

// ZGet returns the score of key. A missing key returns ErrNotFound.
func (c *Conn) ZGet(ctx context.Context, name, key string) (int64, error) {
	r, err := c.Do(ctx, "zget", name, key)
	if err != nil {
		return 0, err
	}
	return r.Int()
}

// ZSize returns the number of members in name.
func (c *Conn) ZSize(ctx context.Context, name string) (int64, error) {
	r, err := c.Do(ctx, "zsize", name)
	if err != nil {
		return 0, err
	}
	return r.Int()
}

// ZDel removes key from name.
func (c *Conn) ZDel(ctx context.Context, name, key string) error {
	r, err := c.Do(ctx, "zdel", name, key)
	if err != nil {
		return err
	}
	return r.Err()
}

// ZTopN returns the n members with the highest scores.
func (c *Conn) ZTopN(ctx context.Context, name string, n int) ([]Member, error) {
	r, err := c.Do(ctx, "ztopn", name, strconv.Itoa(n))
	if err != nil {
		return nil, err
	}
	return r.Members()
}

// ZGetAll returns every member of name with its score.
func (c *Conn) ZGetAll(ctx context.Context, name string) ([]Member, error) {
	r, err := c.Do(ctx, "zgetall", name)
	if err != nil {
		return nil, err
	}
	return r.Members()
}
