package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store provides SQLite-backed persistence for runs.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		review_id TEXT,
		source TEXT NOT NULL,
		message TEXT,
		status TEXT NOT NULL,
		score INTEGER,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS attachments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		size_bytes INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRun creates a new run in the running state.
func (s *Store) CreateRun(source, message string) (*Run, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := s.db.Exec(
		`INSERT INTO runs (id, review_id, source, message, status, created_at, updated_at)
		 VALUES (?, '', ?, ?, 'running', ?, ?)`,
		id, source, message, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	return &Run{
		ID:        id,
		Source:    source,
		Message:   message,
		Status:    "running",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CompleteRun marks the run as completed and records the backend review id
// and, when one was extracted, the similarity score.
func (s *Store) CompleteRun(id, reviewID string, score int, scoreKnown bool) error {
	var scoreVal sql.NullInt64
	if scoreKnown {
		scoreVal = sql.NullInt64{Int64: int64(score), Valid: true}
	}

	_, err := s.db.Exec(
		`UPDATE runs SET review_id = ?, status = 'completed', score = ?, updated_at = ?
		 WHERE id = ?`,
		reviewID, scoreVal, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}

	return nil
}

// FailRun marks the run as failed with the given reason.
func (s *Store) FailRun(id, reason string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = 'failed', error = ?, updated_at = ?
		 WHERE id = ?`,
		reason, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("fail run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID. Returns nil without error when absent.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, review_id, source, COALESCE(message, ''), status, score, COALESCE(error, ''), created_at, updated_at
		 FROM runs WHERE id = ?`,
		id,
	)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, review_id, source, COALESCE(message, ''), status, score, COALESCE(error, ''), created_at, updated_at
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var score sql.NullInt64
	err := row.Scan(&run.ID, &run.ReviewID, &run.Source, &run.Message, &run.Status, &score, &run.Error, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		run.Score = int(score.Int64)
		run.ScoreKnown = true
	}
	return &run, nil
}

// AddAttachment records a file sent with the run.
func (s *Store) AddAttachment(runID, name, mimeType string, sizeBytes int64) error {
	_, err := s.db.Exec(
		`INSERT INTO attachments (run_id, name, mime_type, size_bytes, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, name, mimeType, sizeBytes, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}

	return nil
}

// GetAttachments retrieves all attachments recorded for a run.
func (s *Store) GetAttachments(runID string) ([]Attachment, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, name, mime_type, size_bytes, timestamp
		 FROM attachments
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attachments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attachments []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.ID, &att.RunID, &att.Name, &att.MimeType, &att.SizeBytes, &att.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return attachments, nil
}
