package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/faideww/fish-of-the-day/internal/fish"
	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

// SQLiteStore keeps one fish of the day per day. The most recent day is the
// current entry; older rows are kept as history.
type SQLiteStore struct {
	db          *sql.DB
	upsertStmt  *sql.Stmt
	latestStmt  *sql.Stmt
	historyStmt *sql.Stmt
	loc         *time.Location
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db path: %w", err)
	}

	// DSN notes:
	// - _pragma=busy_timeout sets a lock wait
	// - _pragma=journal_mode(WAL) enables the write-ahead log
	// - _pragma=synchronous(NORMAL) sets the disk synchronizing
	//	 mode to NORMAL (recommended with WAL enabled)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	upsert, err := db.Prepare(`
		INSERT INTO fotd_history (day, species, common_name, image_url, genus, chosen_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(day) DO UPDATE SET
			species     = excluded.species,
			common_name = excluded.common_name,
			image_url   = excluded.image_url,
			genus       = excluded.genus,
			chosen_at   = excluded.chosen_at
	`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	latest, err := db.Prepare(`
		SELECT day, species, common_name, image_url, genus
		FROM fotd_history
		ORDER BY day DESC
		LIMIT 1
	`)
	if err != nil {
		_ = upsert.Close()
		_ = db.Close()
		return nil, err
	}

	history, err := db.Prepare(`
		SELECT day, species, common_name, image_url, genus
		FROM fotd_history
		ORDER BY day DESC
		LIMIT ?
	`)
	if err != nil {
		_ = upsert.Close()
		_ = latest.Close()
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:          db,
		upsertStmt:  upsert,
		latestStmt:  latest,
		historyStmt: history,
		loc:         time.Local,
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s.upsertStmt != nil {
		_ = s.upsertStmt.Close()
	}
	if s.latestStmt != nil {
		_ = s.latestStmt.Close()
	}
	if s.historyStmt != nil {
		_ = s.historyStmt.Close()
	}

	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fotd_history (
			day          TEXT    PRIMARY KEY,
			species      TEXT    NOT NULL,
			common_name  TEXT    NOT NULL DEFAULT '',
			image_url    TEXT    NOT NULL DEFAULT '',
			genus        TEXT    NOT NULL DEFAULT '',
			chosen_at    INTEGER NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStore) ReadFotd(ctx context.Context) (Entry, error) {
	if s == nil || s.db == nil {
		return Entry{}, errors.New("store not initialized")
	}

	e, err := s.scanEntry(s.latestStmt.QueryRowContext(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrUnset
	}
	return e, err
}

func (s *SQLiteStore) WriteFotd(ctx context.Context, e Entry) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}
	if !e.IsSet() {
		return fmt.Errorf("write fotd: %w", ErrUnset)
	}

	_, err := s.upsertStmt.ExecContext(ctx,
		e.Date.Format(dayLayout),
		e.Fish.ScientificName,
		e.Fish.CommonName,
		e.Fish.ImageURL,
		e.Fish.Genus,
		time.Now().Unix(),
	)
	return err
}

// History returns up to limit entries, newest first.
func (s *SQLiteStore) History(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialized")
	}

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.historyStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanEntry(row rowScanner) (Entry, error) {
	var day string
	var rec fish.Record
	if err := row.Scan(&day, &rec.ScientificName, &rec.CommonName, &rec.ImageURL, &rec.Genus); err != nil {
		return Entry{}, err
	}

	date, err := time.ParseInLocation(dayLayout, day, s.loc)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Entry{Fish: &rec, Date: date}, nil
}
