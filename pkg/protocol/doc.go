// Package protocol implements the CatchDB wire format.
//
// A request is a sequence of length-prefixed blocks followed by an empty
// line:
//
//	4\nzset\n5\nboard\n5\nalice\n2\n42\n\n
//
// Replies use the same framing. The first block carries a status word
// (ok, not_found, error, fail, client_error) and the remaining blocks carry
// the payload.
//
// The package offers two ways to read a reply:
//
//   - Decode: positional, lenient decoding of one raw buffer. It never
//     fails and keeps every odd-indexed line.
//   - ReadBlocks: length-aware reading from a bufio.Reader until the frame
//     terminator. It is binary safe and does not depend on read sizes.
package protocol
