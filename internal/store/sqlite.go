package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockWatch/internal/model"
)

// SQLiteStore persists watchlist entries to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps :memory: databases shared and writes serialised
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("sqlite watchlist store opened", "path", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL DEFAULT '',
			symbol         TEXT NOT NULL,
			price          REAL NOT NULL DEFAULT 0,
			current_change REAL NOT NULL DEFAULT 0,
			created_at     INTEGER NOT NULL,
			updated_at     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_symbol ON watchlist(symbol)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec %q: %w", q[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, symbol, price, current_change FROM watchlist ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	entries := []model.WatchlistEntry{}
	for rows.Next() {
		var e model.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Symbol, &e.Price, &e.CurrentChange); err != nil {
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (model.WatchlistEntry, error) {
	var e model.WatchlistEntry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, symbol, price, current_change FROM watchlist WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Symbol, &e.Price, &e.CurrentChange)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WatchlistEntry{}, ErrNotFound
	}
	if err != nil {
		return model.WatchlistEntry{}, fmt.Errorf("get watchlist entry %d: %w", id, err)
	}
	return e, nil
}

func (s *SQLiteStore) Create(ctx context.Context, d model.WatchlistDraft) (model.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx, `INSERT INTO watchlist
		(name, symbol, price, current_change, created_at, updated_at)
		VALUES (?,?,?,?,?,?)`,
		d.Name, d.Symbol, d.Price, d.CurrentChange, now, now,
	)
	if err != nil {
		return model.WatchlistEntry{}, fmt.Errorf("insert watchlist entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WatchlistEntry{}, fmt.Errorf("insert watchlist entry: %w", err)
	}
	return d.Entry(id), nil
}

func (s *SQLiteStore) Update(ctx context.Context, e model.WatchlistEntry) (model.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE watchlist
		SET name = ?, symbol = ?, price = ?, current_change = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, e.Symbol, e.Price, e.CurrentChange, time.Now().Unix(), e.ID,
	)
	if err != nil {
		return model.WatchlistEntry{}, fmt.Errorf("update watchlist entry %d: %w", e.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.WatchlistEntry{}, ErrNotFound
	}
	return e, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete watchlist entry %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	slog.Info("closing sqlite watchlist store")
	return s.db.Close()
}
