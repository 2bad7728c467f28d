package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
	"github.com/catchdb/catchdb-go/pkg/catchdb/catchdbtest"
)

func TestExec(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.NewZSetStore().Handler())

	if _, _, err := runApp(t, "", serverArgs(srv, "exec", "zset", "board", "alice", "42")...); err != nil {
		t.Fatalf("exec zset error = %v", err)
	}
	stdout, _, err := runApp(t, "", serverArgs(srv, "exec", "zget", "board", "alice")...)
	if err != nil {
		t.Fatalf("exec zget error = %v", err)
	}
	if stdout != "ok\n42\n" {
		t.Errorf("stdout = %q, want %q", stdout, "ok\n42\n")
	}
}

func TestExec_LogsCommand(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.NewZSetStore().Handler())

	_, stderr, err := runApp(t, "", serverArgs(srv, "--log-level", "debug", "exec", "zget", "board", "alice")...)
	if err != nil {
		t.Fatalf("exec zget error = %v", err)
	}
	for _, want := range []string{`msg="exec command"`, `msg="exec reply"`, "command=zget", "command_id=", "status=not_found"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %s:\n%s", want, stderr)
		}
	}
}

func TestExec_KeepsArgumentsWhole(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Echo())

	if _, _, err := runApp(t, "", serverArgs(srv, "exec", "set", "greeting", "hello world")...); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	reqs := srv.Requests()
	if len(reqs) != 1 || len(reqs[0]) != 3 || reqs[0][2] != "hello world" {
		t.Errorf("server saw %q", reqs)
	}
}

func TestExec_ReplyStatus(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.NewZSetStore().Handler())

	stdout, _, err := runApp(t, "", serverArgs(srv, "exec", "zget", "board", "nobody")...)
	if err != nil {
		t.Fatalf("Run() error = %v, reply status should not fail without --fail", err)
	}
	if stdout != "not_found\n" {
		t.Errorf("stdout = %q", stdout)
	}

	_, _, err = runApp(t, "", serverArgs(srv, "exec", "--fail", "zget", "board", "nobody")...)
	if !errors.Is(err, catchdb.ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
}

func TestExec_Strict(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Echo())

	_, _, err := runApp(t, "", serverArgs(srv, "--strict", "exec", "zget", "board")...)
	if !errors.Is(err, catchdb.ErrWrongArity) {
		t.Fatalf("Run() error = %v, want ErrWrongArity", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("server saw %d requests, want none", n)
	}
}

func TestExec_Errors(t *testing.T) {
	if _, _, err := runApp(t, "", "exec"); err == nil || !strings.Contains(err.Error(), "command required") {
		t.Errorf("exec without args error = %v", err)
	}

	_, _, err := runApp(t, "", "--host", "127.0.0.1", "--port", closedPort(t), "exec", "get", "k")
	if !errors.Is(err, catchdb.ErrConnectFailed) {
		t.Errorf("Run() error = %v, want ErrConnectFailed", err)
	}

	srv := catchdbtest.NewServer(t, catchdbtest.HangUp())
	_, _, err = runApp(t, "", serverArgs(srv, "exec", "get", "k")...)
	if !errors.Is(err, catchdb.ErrPeerClosed) {
		t.Errorf("Run() error = %v, want ErrPeerClosed", err)
	}
}

func TestExec_YAML(t *testing.T) {
	srv := catchdbtest.NewServer(t, catchdbtest.Echo())

	stdout, _, err := runApp(t, "", serverArgs(srv, "-o", "yaml", "exec", "get", "k")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"command: get k\n", "status: ok\n", "- k\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout, want)
		}
	}
}
