// Package visits is a privacy-conscious page view store. Client IPs are never
// written: only a salted, truncated hash is kept, and old rows are purged.
package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// ErrDisabled is returned by a nil or closed store.
var ErrDisabled = errors.New("visit tracking disabled")

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Route     string    `json:"route"`
	Timestamp time.Time `json:"timestamp"`
}

// RouteCount is the number of views of one route.
type RouteCount struct {
	Route string `json:"route"`
	Views int64  `json:"views"`
}

// Stats summarises stored visits.
type Stats struct {
	TotalViews     int64        `json:"total_views"`
	UniqueVisitors int64        `json:"unique_visitors"`
	ViewsToday     int64        `json:"views_today"`
	ViewsThisWeek  int64        `json:"views_this_week"`
	ByRoute        []RouteCount `json:"by_route"`
	Recent         []Visit      `json:"recent"`
}

// Store records visits in SQLite.
type Store struct {
	db     *sql.DB
	salt   string
	now    func() time.Time
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	route TEXT NOT NULL,
	viewed_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visits_viewed_at ON visits (viewed_at);`

// Open opens (creating if needed) the database at path. Use ":memory:" in tests.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visits db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visits schema: %w", err)
	}
	salt, err := newSalt()
	if err != nil {
		db.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, salt: salt, now: time.Now, logger: logger}, nil
}

func newSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// HashIP hashes ip with the store's salt. Consistent for the process lifetime.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one view of route.
func (s *Store) Record(ctx context.Context, ip, userAgent, route string) error {
	if s == nil {
		return ErrDisabled
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, route, viewed_at) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, route, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than retention and returns how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil {
		return 0, ErrDisabled
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE viewed_at < ?`, s.now().Add(-retention).UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.logger.Info("privacy cleanup removed old visits", "rows", n, "retention", retention)
	}
	return n, nil
}

// RunCleanup purges old visits now and then every interval until ctx ends.
func (s *Store) RunCleanup(ctx context.Context, retention, interval time.Duration) {
	if s == nil || retention <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.Cleanup(ctx, retention); err != nil && ctx.Err() == nil {
			s.logger.Error("visit cleanup failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stats computes the admin summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	if s == nil {
		return nil, ErrDisabled
	}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats := &Stats{ByRoute: []RouteCount{}, Recent: []Visit{}}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalViews, `SELECT COUNT(*) FROM visits`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&stats.ViewsToday, `SELECT COUNT(*) FROM visits WHERE viewed_at >= ?`, []any{startOfDay.UnixNano()}},
		{&stats.ViewsThisWeek, `SELECT COUNT(*) FROM visits WHERE viewed_at >= ?`, []any{now.Add(-7 * 24 * time.Hour).UnixNano()}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	byRoute, err := s.routeCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats.ByRoute = byRoute

	recent, err := s.db.QueryContext(ctx,
		`SELECT id, hashed_ip, user_agent, route, viewed_at FROM visits ORDER BY viewed_at DESC, id DESC LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer recent.Close()
	for recent.Next() {
		var (
			v        Visit
			viewedAt int64
		)
		if err := recent.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Route, &viewedAt); err != nil {
			return nil, fmt.Errorf("scan recent visit: %w", err)
		}
		v.Timestamp = time.Unix(0, viewedAt).UTC()
		stats.Recent = append(stats.Recent, v)
	}
	return stats, recent.Err()
}

// routeCounts closes its rows before returning; the pool has one connection.
func (s *Store) routeCounts(ctx context.Context) ([]RouteCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT route, COUNT(*) AS views FROM visits GROUP BY route ORDER BY views DESC, route`)
	if err != nil {
		return nil, fmt.Errorf("query route stats: %w", err)
	}
	defer rows.Close()
	counts := []RouteCount{}
	for rows.Next() {
		var rc RouteCount
		if err := rows.Scan(&rc.Route, &rc.Views); err != nil {
			return nil, fmt.Errorf("scan route stats: %w", err)
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query route stats: %w", err)
	}
	return counts, nil
}
