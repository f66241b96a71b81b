package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrNotFound is returned by a KV when no record is stored for the key.
var ErrNotFound = errors.New("record not found")

// Namespace separates the kinds of record stored per guild.
type Namespace string

const (
	NamespacePanels   Namespace = "ticket_panels"
	NamespaceEmbeds   Namespace = "embeds"
	NamespaceSettings Namespace = "settings"
)

// Quarantine is the namespace an undecodable record of ns is copied to before it can be overwritten.
func (ns Namespace) Quarantine() Namespace {
	return ns + "_corrupt"
}

// KV stores one JSON record per (namespace, guild). Writes replace the whole record; the last writer wins.
type KV interface {
	// Get returns the record, or ErrNotFound.
	Get(ctx context.Context, ns Namespace, guildID string) ([]byte, error)

	// Put creates or replaces the record.
	Put(ctx context.Context, ns Namespace, guildID string, data []byte) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, ns Namespace, guildID string) error

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend.
	Close(ctx context.Context) error
}

const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// observe counts a store call and returns a func that records its latency.
func observe(backend, op string, ns Namespace) func() time.Duration {
	monitoring.StoreTotalRequests.WithLabelValues(backend, op, string(ns)).Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(backend, op, string(ns)))
	return t.ObserveDuration
}

// quarantine copies a record that could not be decoded to the quarantine namespace, so the next write to ns
// does not destroy the only copy. The caller then treats the record as empty.
func quarantine(ctx context.Context, l *slog.Logger, kv KV, ns Namespace, guildID string, data []byte, decodeErr error) error {
	monitoring.CorruptRecords.WithLabelValues(string(ns)).Inc()
	l.Error("Stored record could not be decoded, treating as empty",
		slog.String(logging.KeyGuildID, guildID),
		slog.String("namespace", string(ns)),
		slog.String("quarantine", string(ns.Quarantine())),
		slog.Int("bytes", len(data)),
		slog.String(logging.KeyError, decodeErr.Error()),
	)

	if err := kv.Put(ctx, ns.Quarantine(), guildID, data); err != nil {
		return fmt.Errorf("error quarantining undecodable %s record: %w", ns, err)
	}
	return nil
}
