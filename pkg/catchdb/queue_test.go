package catchdb

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/catchdb/catchdb-go/pkg/catchdb/catchdbtest"
)

func TestQueue_Aliases(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Reply("ok"))
	c := dialTest(t, srv, nil)
	ctx := context.Background()

	steps := []func() (*Reply, error){
		func() (*Reply, error) { return c.QPush(ctx, "jobs", "a") },
		func() (*Reply, error) { return c.QPushFront(ctx, "jobs", "a") },
		func() (*Reply, error) { return c.QPop(ctx, "jobs") },
		func() (*Reply, error) { return c.QPopBack(ctx, "jobs") },
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	frames := srv.Frames()
	if !bytes.Equal(frames[0], frames[1]) {
		t.Errorf("QPush frame %q != QPushFront frame %q", frames[0], frames[1])
	}
	if !bytes.Equal(frames[2], frames[3]) {
		t.Errorf("QPop frame %q != QPopBack frame %q", frames[2], frames[3])
	}
	if want := []byte("11\nqpush_front\n4\njobs\n1\na\n\n"); !bytes.Equal(frames[0], want) {
		t.Errorf("QPush frame = %q, want %q", frames[0], want)
	}
}

func TestQueue_Requests(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Echo())
	c := dialTest(t, srv, nil)
	ctx := context.Background()

	calls := []struct {
		call func() (*Reply, error)
		want []string
	}{
		{func() (*Reply, error) { return c.QSize(ctx, "q") }, []string{"qsize", "q"}},
		{func() (*Reply, error) { return c.QFront(ctx, "q") }, []string{"qfront", "q"}},
		{func() (*Reply, error) { return c.QBack(ctx, "q") }, []string{"qback", "q"}},
		{func() (*Reply, error) { return c.QPushBack(ctx, "q", "x") }, []string{"qpush_back", "q", "x"}},
		{func() (*Reply, error) { return c.QPopFront(ctx, "q") }, []string{"qpop_front", "q"}},
		{func() (*Reply, error) { return c.QClear(ctx, "q") }, []string{"qclear", "q"}},
		{func() (*Reply, error) { return c.QList(ctx, "q") }, []string{"qlist", "q"}},
		{func() (*Reply, error) { return c.QSlice(ctx, "q", 1, 3) }, []string{"qslice", "q", "1", "3"}},
		{func() (*Reply, error) { return c.QGet(ctx, "q", 2) }, []string{"qget", "q", "2"}},
	}

	for _, tt := range calls {
		r, err := tt.call()
		if err != nil {
			t.Fatalf("%s error = %v", tt.want[0], err)
		}
		if !r.OK() || !reflect.DeepEqual(r.Data, tt.want[1:]) {
			t.Errorf("%s reply = %+v", tt.want[0], r)
		}
	}

	reqs := srv.Requests()
	for i, tt := range calls {
		if !reflect.DeepEqual(reqs[i], tt.want) {
			t.Errorf("request %d = %q, want %q", i, reqs[i], tt.want)
		}
	}
}
