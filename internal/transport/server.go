// Package transport carries OSC packets over UDP, one packet per datagram.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/chabad360/osc-codec/internal/observability"
	"github.com/chabad360/osc-codec/osc"
)

// MaxPacketSize is the largest UDP payload the server reads.
const MaxPacketSize = 65535

// DefaultWorkers bounds concurrent handler calls when Server.Workers is zero.
const DefaultWorkers = 16

var ErrPacketTooLarge = errors.New("transport: packet exceeds maximum datagram size")

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// Handler is called for every packet that decodes successfully.
type Handler func(p osc.Packet, addr net.Addr)

// Server receives OSC packets on a UDP address and hands them to Handler.
type Server struct {
	Addr        string
	Decoder     osc.Decoder
	Handler     Handler
	ReadTimeout time.Duration
	Workers     int
	Logger      *zerolog.Logger
}

func (s *Server) logger() *zerolog.Logger {
	if s.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return s.Logger
}

// ListenAndServe listens on s.Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ctx, ln)
}

// Serve reads packets from c until ctx is done or c fails. Datagrams that do
// not decode are logged and dropped. A nil error is returned when ctx ends
// the loop.
func (s *Server) Serve(ctx context.Context, c net.PacketConn) error {
	if s.Handler == nil {
		return errors.New("transport: server has no handler")
	}
	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	log := s.logger()

	pool, err := ants.NewPool(workers,
		ants.WithPanicHandler(func(r interface{}) {
			log.Error().Interface("panic", r).Msg("osc handler panicked")
		}),
		ants.WithLogger(poolLogger{log}),
	)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer func() { _ = pool.ReleaseTimeout(5 * time.Second) }()

	stop := context.AfterFunc(ctx, func() {
		_ = c.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		// Checked before each read so a fresh ReadTimeout deadline cannot
		// outlast cancellation.
		if ctx.Err() != nil {
			return nil
		}
		data, addr, err := s.readFromConnection(c)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}

		p, err := s.Decoder.ParsePacket(data)
		observability.RecordPacket(len(data), p, err)
		if err != nil {
			log.Debug().Err(err).Stringer("from", addr).Int("bytes", len(data)).Msg("dropping undecodable datagram")
			continue
		}

		if err := pool.Submit(func() { s.Handler(p, addr) }); err != nil {
			log.Warn().Err(err).Stringer("from", addr).Msg("handler pool rejected packet")
		}
	}
}

// ReceivePacket reads one datagram from c and decodes it.
func (s *Server) ReceivePacket(c net.PacketConn) (osc.Packet, net.Addr, error) {
	data, addr, err := s.readFromConnection(c)
	if err != nil {
		return nil, addr, err
	}
	p, err := s.Decoder.ParsePacket(data)
	observability.RecordPacket(len(data), p, err)
	return p, addr, err
}

// readFromConnection returns a copy of the next datagram, so packets decoded
// from it may borrow freely.
func (s *Server) readFromConnection(c net.PacketConn) ([]byte, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}
	bb := make([]byte, n)
	copy(bb, (*b)[:n])
	return bb, a, nil
}

type poolLogger struct {
	log *zerolog.Logger
}

func (l poolLogger) Printf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}
