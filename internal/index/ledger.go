package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tobi-alade/docsorter/internal/common"
)

// Ledger is the durable record of analysis work, one row per completed
// document per run. Each re-run writes a fresh generation of rows; earlier
// generations stay untouched. Rows are committed one INSERT at a time, so
// a crash never leaves a half-written record, and a later run can reuse
// everything the ledger already holds.
type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	root        TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS records (
	run_id        TEXT NOT NULL REFERENCES runs(id),
	root          TEXT NOT NULL,
	source_path   TEXT NOT NULL,
	file_name     TEXT NOT NULL,
	summary       TEXT NOT NULL,
	tags          TEXT NOT NULL,
	proposed_name TEXT NOT NULL,
	language      TEXT NOT NULL,
	authors       TEXT NOT NULL,
	title         TEXT NOT NULL,
	date          TEXT NOT NULL,
	subject       TEXT NOT NULL,
	status        TEXT NOT NULL,
	analyzed_at   TIMESTAMP NOT NULL,
	PRIMARY KEY (run_id, source_path)
);
CREATE INDEX IF NOT EXISTS idx_records_root_path ON records(root, source_path);
`

// OpenLedger opens (creating if needed) the ledger database at path.
func OpenLedger(path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, common.NewAppError("LEDGER", "open database", err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, common.NewAppError("LEDGER", "create schema", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// BeginRun registers a new analysis run over root and returns its id.
func (l *Ledger) BeginRun(ctx context.Context, root string) (string, error) {
	id := uuid.New().String()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, started_at) VALUES (?, ?, ?)`,
		id, root, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	l.logger.Info("ledger.run.started", "run_id", id, "root", root)
	return id, nil
}

// FinishRun marks the run complete.
func (l *Ledger) FinishRun(ctx context.Context, runID string) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Commit durably appends one finished record to the run. Safe for
// concurrent callers; each row is a single atomic INSERT.
func (l *Ledger) Commit(ctx context.Context, runID, root string, rec Record) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO records
		 (run_id, root, source_path, file_name, summary, tags, proposed_name,
		  language, authors, title, date, subject, status, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, root, rec.SourcePath, rec.FileName,
		JoinSummary(rec.Summary), JoinTags(rec.Tags), rec.ProposedName,
		rec.Language, rec.Meta.Authors, rec.Meta.Title, rec.Meta.Date, rec.Meta.Subject,
		string(rec.Status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("commit record %s: %w", rec.SourcePath, err)
	}
	return nil
}

// Lookup returns the most recent successfully analyzed record for the
// given root and source path, if any earlier run produced one.
func (l *Ledger) Lookup(ctx context.Context, root, sourcePath string) (Record, bool, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT source_path, file_name, summary, tags, proposed_name,
		        language, authors, title, date, subject, status
		 FROM records
		 WHERE root = ? AND source_path = ? AND status = ?
		 ORDER BY analyzed_at DESC
		 LIMIT 1`,
		root, sourcePath, string(StatusAnalyzed))

	var rec Record
	var summary, tags, status string
	err := row.Scan(&rec.SourcePath, &rec.FileName, &summary, &tags, &rec.ProposedName,
		&rec.Language, &rec.Meta.Authors, &rec.Meta.Title, &rec.Meta.Date, &rec.Meta.Subject,
		&status)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("lookup record %s: %w", sourcePath, err)
	}
	rec.Summary = SplitSummary(summary)
	rec.Tags = SplitTags(tags)
	rec.Status = Status(status)
	return rec, true, nil
}
