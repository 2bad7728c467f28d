package catchdb

import (
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// Default connection settings.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = 7777
	DefaultReadSize = 4096
)

// ReadMode selects how a reply is read from the socket.
type ReadMode string

const (
	// ReadFramed reads until the empty line that ends a reply frame.
	ReadFramed ReadMode = "framed"

	// ReadSingle performs exactly one read of up to ReadSize bytes and
	// decodes it positionally. Replies that do not fit are truncated.
	ReadSingle ReadMode = "single"
)

// Observer receives one call per round trip.
//
// bytesIn is the number of reply bytes consumed; err is nil on success.
type Observer interface {
	ObserveCommand(command string, d time.Duration, bytesOut, bytesIn int, err error)
}

// Config configures a connection.
type Config struct {
	Host string
	Port int

	// Zero means no timeout.
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	ReadMode ReadMode
	// ReadSize is the read size in ReadSingle mode.
	ReadSize int
	// Limits bounds replies in ReadFramed mode.
	Limits protocol.Limits

	Logger   *slog.Logger
	Observer Observer
}

// DefaultConfig returns a Config for the default server address.
func DefaultConfig() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		ReadMode: ReadFramed,
		ReadSize: DefaultReadSize,
		Limits:   protocol.DefaultLimits(),
	}
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ReadMode == "" {
		c.ReadMode = ReadFramed
	}
	if c.ReadSize <= 0 {
		c.ReadSize = DefaultReadSize
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
