package observability

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chabad360/osc-codec/osc"
)

var (
	registerOnce sync.Once

	packetsDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "osc",
			Name:      "packets_decoded_total",
			Help:      "Packets decoded, by kind.",
		},
		[]string{"kind"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "osc",
			Name:      "decode_errors_total",
			Help:      "Packets rejected by the decoder, by reason.",
		},
		[]string{"reason"},
	)
	bytesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "osc",
			Name:      "bytes_received_total",
			Help:      "Bytes received in datagrams.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(packetsDecoded, decodeErrors, bytesReceived)
	})
}

// RecordPacket counts a received datagram of n bytes and its decode outcome.
func RecordPacket(n int, p osc.Packet, err error) {
	RegisterMetrics()
	bytesReceived.Add(float64(n))
	if err != nil {
		decodeErrors.WithLabelValues(ErrorReason(err)).Inc()
		return
	}
	packetsDecoded.WithLabelValues(PacketKind(p)).Inc()
}

// PacketKind returns "message" or "bundle".
func PacketKind(p osc.Packet) string {
	switch p.(type) {
	case *osc.Message:
		return "message"
	case *osc.Bundle:
		return "bundle"
	default:
		return "unknown"
	}
}

// ErrorReason classifies a decode error for metric labels.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, osc.ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, osc.ErrTrailingBytes):
		return "trailing_bytes"
	case errors.Is(err, osc.ErrInvalidTag):
		return "invalid_tag"
	case errors.Is(err, osc.ErrInvalidString):
		return "invalid_string"
	case errors.Is(err, osc.ErrUnexpectedEOF):
		return "unexpected_eof"
	case errors.Is(err, osc.ErrTruncated):
		return "truncated"
	default:
		return "other"
	}
}

// ServeMetrics exposes /metrics on addr until ctx is done.
func ServeMetrics(ctx context.Context, addr string) error {
	RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
