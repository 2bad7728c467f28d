package command

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/catchdb/catchdb-go/pkg/catchdb/catchdbtest"
)

// runApp runs catchdb-cli with args against a private HOME and returns
// what it printed.
func runApp(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	app := App()
	var out, errOut bytes.Buffer
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(append([]string{"catchdb-cli"}, args...))
	return out.String(), errOut.String(), err
}

// serverArgs returns the global flags pointing at srv.
func serverArgs(srv *catchdbtest.Server, extra ...string) []string {
	args := []string{"--host", srv.Host(), "--port", strconv.Itoa(srv.Port()), "--timeout", "2s"}
	return append(args, extra...)
}

// closedPort returns a local port with nothing listening on it.
func closedPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return strconv.Itoa(port)
}
