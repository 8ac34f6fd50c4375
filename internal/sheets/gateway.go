// Package sheets is the gateway to the spreadsheet-backed append log.
// Every remote operation in the application funnels through the Gateway:
// it resolves credentials, caches the open connection (1 hour) and the
// headcount counter cell (5 minutes), and converts every remote failure
// into a sentinel value or a wrapped domain error. Nothing above this
// package ever sees a raw Sheets API error.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ropiclub/attendance/internal/domain"
)

// Sentinel display values for the counter. These are shown to users
// literally; a failed read never blocks the form.
const (
	CounterUnavailable = "N/A"
	CounterReadFailed  = "Error"
)

// Cache keys. One handle and one counter per gateway.
const (
	handleKey  = "handle"
	counterKey = "counter"
)

// Conn is the minimal remote surface the gateway drives. The production
// implementation wraps the Google Sheets API; tests substitute a fake.
type Conn interface {
	// Append appends rows of cell values after the last data row.
	Append(ctx context.Context, values [][]interface{}) error

	// CounterCell reads the single headcount cell.
	CounterCell(ctx context.Context) (string, error)
}

// ConnectFunc opens a fresh connection. Called lazily and at most once per
// handle-cache window; a failure is returned to the caller, not retried.
type ConnectFunc func(ctx context.Context) (Conn, error)

// Gateway is the application's only path to the remote row store.
type Gateway struct {
	connect    ConnectFunc
	cache      *gocache.Cache
	handleTTL  time.Duration
	counterTTL time.Duration
	log        *slog.Logger

	// mu serializes connection attempts so concurrent requests during a
	// cold cache don't open duplicate handles.
	mu sync.Mutex
}

// New constructs a Gateway around connect. handleTTL bounds how long an
// opened connection is reused; counterTTL bounds counter staleness.
func New(connect ConnectFunc, handleTTL, counterTTL time.Duration, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		connect:    connect,
		cache:      gocache.New(gocache.NoExpiration, time.Minute),
		handleTTL:  handleTTL,
		counterTTL: counterTTL,
		log:        log,
	}
}

// Open constructs a production Gateway that dials the Google Sheets API
// with the configured credentials.
func Open(cfg Config, log *slog.Logger) *Gateway {
	return New(func(ctx context.Context) (Conn, error) {
		return dial(ctx, cfg)
	}, cfg.HandleTTL, cfg.CounterTTL, log)
}

// handle returns the cached connection, dialing a new one when the cache
// is cold or expired. A stale-but-cached handle is returned as-is; callers
// treat operation failures on it as retryable, not fatal.
func (g *Gateway) handle(ctx context.Context) (Conn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v, ok := g.cache.Get(handleKey); ok {
		return v.(Conn), nil
	}

	conn, err := g.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets.Gateway.handle: %w: %v", domain.ErrNotConnected, err)
	}
	g.cache.Set(handleKey, conn, g.handleTTL)
	g.log.Info("row store connection opened")
	return conn, nil
}

// Connected reports whether a usable handle can be obtained right now.
// The form's submit path fails fast on this before assembling rows.
func (g *Gateway) Connected(ctx context.Context) bool {
	_, err := g.handle(ctx)
	return err == nil
}

// ReadCounter returns the current headcount cell as a display string.
// It never returns an error: a missing connection yields "N/A" and a
// failed read yields "Error", both cached like a successful value so a
// flapping remote doesn't get hammered on every render.
func (g *Gateway) ReadCounter(ctx context.Context) string {
	if v, ok := g.cache.Get(counterKey); ok {
		return v.(string)
	}

	conn, err := g.handle(ctx)
	if err != nil {
		g.log.Warn("counter read skipped, no connection", "error", err)
		g.cache.Set(counterKey, CounterUnavailable, g.counterTTL)
		return CounterUnavailable
	}

	value, err := conn.CounterCell(ctx)
	if err != nil {
		g.log.Error("counter read failed", "error", err)
		value = CounterReadFailed
	}
	g.cache.Set(counterKey, value, g.counterTTL)
	return value
}

// AppendRows appends the submission rows in one remote call. On success
// the counter cache is invalidated so the next read reflects the new
// headcount; the connection cache is deliberately left alone. On failure
// the rows are not retried and the counter cache is untouched.
func (g *Gateway) AppendRows(ctx context.Context, rows []domain.Row) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := g.handle(ctx)
	if err != nil {
		return err
	}

	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}

	if err := conn.Append(ctx, values); err != nil {
		return fmt.Errorf("sheets.Gateway.AppendRows: %w", err)
	}

	g.cache.Delete(counterKey)
	g.log.Info("rows appended", "count", len(rows))
	return nil
}
