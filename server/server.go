package server

import (
	"context"
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/afero"

	anyls "github.com/sebostien/any-ls"
	"github.com/sebostien/any-ls/health"
	"github.com/sebostien/any-ls/log"
	"github.com/sebostien/any-ls/requests"
)

// Options configures the service.
type Options struct {
	// Listen is a TCP address.  When empty, the service speaks the
	// protocol over stdin/stdout.
	Listen string

	// LogFile receives log output; stderr is used when empty.  Stdout is
	// never an option, the protocol owns it.
	LogFile string

	// Verbosity raises the log level: 0 is Info, 1 Verbose, 2+ Debug.
	Verbosity int
}

// InitializeService probes the providers once and starts serving.
// Provider probing (including the definition-index filesystem walk)
// completes before the first connection is accepted, so it never delays
// an in-flight initialize response.
func InitializeService(opts Options) error {
	w := os.Stderr
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrapf(err, "Failed to open log file %s", opts.LogFile)
		}
		defer f.Close()
		w = f
	}

	l := log.CreateLog(w)
	switch {
	case opts.Verbosity == 1:
		l.SetLevel(log.Verbose)
	case opts.Verbosity >= 2:
		l.SetLevel(log.Debug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "Failed to determine working directory")
	}

	registry := anyls.NewRegistry(afero.NewOsFs(), cwd, l)
	defer registry.Close()

	load := health.StartLoadMonitoring()
	defer load.Close()

	if opts.Listen == "" {
		return serveStdio(registry, load, l)
	}

	return serveListener(opts.Listen, registry, load, l)
}

func serveStdio(registry *anyls.Registry, load *health.Load, l *log.Log) error {
	l.Infof("Serving over stdio\n")

	h := requests.NewHandler(load, registry, l)

	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.AsyncHandler(h))
	h.SetConnection(conn)

	<-conn.DisconnectNotify()

	l.Infof("Client disconnected\n")

	return nil
}

// serveListener accepts TCP connections, each with its own handler and
// document store.  The provider registry is shared; providers were
// probed once at startup and are not re-probed per connection.
func serveListener(addr string, registry *anyls.Registry, load *health.Load, l *log.Log) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "Failed to listen on %s", addr)
	}
	defer lis.Close()

	l.Infof("Serving on %s\n", addr)

	for {
		c, err := lis.Accept()
		if err != nil {
			return errors.Wrap(err, "Failed to accept connection")
		}

		go func(c net.Conn) {
			session := uuid.New()
			l.Infof("Session %s connected from %s\n", session, c.RemoteAddr())

			h := requests.NewHandler(load, registry, l)

			stream := jsonrpc2.NewBufferedStream(c, jsonrpc2.VSCodeObjectCodec{})
			conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.AsyncHandler(h))
			h.SetConnection(conn)

			<-conn.DisconnectNotify()

			l.Infof("Session %s closed\n", session)
		}(c)
	}
}

// stdrwc adapts the process's stdin/stdout pair to io.ReadWriteCloser
// for the jsonrpc2 stream.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
