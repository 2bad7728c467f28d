// Package catchdb is a client for the CatchDB key-value server.
//
// A Conn owns one TCP connection and runs one request at a time:
//
//	conn, err := catchdb.Dial(ctx, catchdb.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	out, err := conn.Process(ctx, "zset board alice 42")
//
// Process forwards a raw command line and returns the reply text. The
// typed methods (ZSet, ZGet, ZTopN, QPush, ...) build the same frames from
// arguments and interpret the reply status.
//
// Errors carry stable codes and are matched with errors.Is against the
// exported sentinels. ErrPeerClosed is returned when the server closes the
// connection instead of replying; any other I/O failure is ErrTransport.
// Both leave the Conn closed.
package catchdb
