package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type Keyword struct {
	Phrase      string
	Score       float64
	Occurrences int
}

type Run struct {
	ID               string
	Method           string
	Source           string
	AbstractType     string
	SamplePercentage float64
	AbstractCount    int
	FailedCount      int
}

type KeywordDB struct {
	db *sql.DB
}

func NewKeywordDB(dbPath string) (*KeywordDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	keywordDB := &KeywordDB{
		db: db,
	}

	if err := keywordDB.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return keywordDB, nil
}

func (kdb *KeywordDB) initSchema() error {
	_, err := kdb.db.Exec(Schema)
	return err
}

func (kdb *KeywordDB) Close() error {
	return kdb.db.Close()
}

func (kdb *KeywordDB) StartRun(ctx context.Context, run *Run) error {
	_, err := kdb.db.ExecContext(ctx,
		`INSERT INTO extraction_runs (run_id, method, abstract_source, abstract_type, sample_percentage)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Method, run.Source, run.AbstractType, run.SamplePercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to start run %s: %w", run.ID, err)
	}
	return kdb.SetMetadata(ctx, "last_run_id", run.ID)
}

func (kdb *KeywordDB) FinishRun(ctx context.Context, runID string, abstractCount, failedCount int) error {
	_, err := kdb.db.ExecContext(ctx,
		`UPDATE extraction_runs SET abstract_count = ?, failed_count = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE run_id = ?`,
		abstractCount, failedCount, runID,
	)
	return err
}

func (kdb *KeywordDB) GetRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{}
	err := kdb.db.QueryRowContext(ctx,
		`SELECT run_id, method, abstract_source, abstract_type, sample_percentage, abstract_count, failed_count
		 FROM extraction_runs WHERE run_id = ?`,
		runID,
	).Scan(&run.ID, &run.Method, &run.Source, &run.AbstractType, &run.SamplePercentage, &run.AbstractCount, &run.FailedCount)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (kdb *KeywordDB) IsAbstractExtracted(ctx context.Context, abstractID int, method string) (bool, error) {
	var exists bool
	err := kdb.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM extracted_abstracts WHERE abstract_id = ? AND method = ?)",
		abstractID, method,
	).Scan(&exists)
	return exists, err
}

func (kdb *KeywordDB) GetExtractedAbstractCount(ctx context.Context, method string) (int, error) {
	var count int
	err := kdb.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM extracted_abstracts WHERE method = ?",
		method,
	).Scan(&count)
	return count, err
}

// SaveKeywords replaces the keywords stored for abstractID and method in a single
// transaction and marks the abstract as extracted.
func (kdb *KeywordDB) SaveKeywords(ctx context.Context, runID string, abstractID int, method string, keywords []Keyword) error {
	tx, err := kdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM extracted_keywords WHERE abstract_id = ? AND method = ?",
		abstractID, method,
	); err != nil {
		return fmt.Errorf("failed to clear keywords of abstract %d: %w", abstractID, err)
	}

	insertStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO extracted_keywords (run_id, abstract_id, keyword, score, occurrences, method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer insertStmt.Close()

	for _, kw := range keywords {
		if _, err := insertStmt.ExecContext(ctx, runID, abstractID, kw.Phrase, kw.Score, kw.Occurrences, method); err != nil {
			return fmt.Errorf("failed to insert keyword %q: %w", kw.Phrase, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO extracted_abstracts (abstract_id, method, run_id, keyword_count)
		 VALUES (?, ?, ?, ?)`,
		abstractID, method, runID, len(keywords),
	); err != nil {
		return fmt.Errorf("failed to mark abstract %d as extracted: %w", abstractID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetKeywords returns the stored keywords of an abstract, best score first.
func (kdb *KeywordDB) GetKeywords(ctx context.Context, abstractID int, method string) ([]Keyword, error) {
	rows, err := kdb.db.QueryContext(ctx,
		`SELECT keyword, score, occurrences FROM extracted_keywords
		 WHERE abstract_id = ? AND method = ?
		 ORDER BY score DESC, keyword_id`,
		abstractID, method,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		if err := rows.Scan(&kw.Phrase, &kw.Score, &kw.Occurrences); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

func (kdb *KeywordDB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := kdb.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO extraction_metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		key, value,
	)
	return err
}

func (kdb *KeywordDB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := kdb.db.QueryRowContext(ctx,
		"SELECT value FROM extraction_metadata WHERE key = ?",
		key,
	).Scan(&value)
	return value, err
}
