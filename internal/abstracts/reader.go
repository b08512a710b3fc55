package abstracts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const Schema = `
CREATE TABLE IF NOT EXISTS abstracts (
    abstract_id INTEGER PRIMARY KEY,
    abstract_text TEXT NOT NULL,
    abstract_source TEXT NOT NULL DEFAULT '',
    abstract_type TEXT NOT NULL DEFAULT 'Testing'
);
CREATE INDEX IF NOT EXISTS idx_abstracts_source_type ON abstracts(abstract_source, abstract_type);
`

type Abstract struct {
	ID     int
	Text   string
	Source string
	Type   string
}

// Filter narrows abstracts by source and type. Empty fields match everything.
type Filter struct {
	Source string
	Type   string
}

func (f Filter) where() (string, []any) {
	var clauses []string
	var args []any
	if f.Source != "" {
		clauses = append(clauses, "abstract_source = ?")
		args = append(args, f.Source)
	}
	if f.Type != "" {
		clauses = append(clauses, "abstract_type = ?")
		args = append(args, f.Type)
	}
	if len(clauses) == 0 {
		return "1 = 1", args
	}
	return strings.Join(clauses, " AND "), args
}

type AbstractDB struct {
	db *sql.DB
}

func NewAbstractDB(dbPath string) (*AbstractDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open abstract database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init abstract schema: %w", err)
	}

	return &AbstractDB{db: db}, nil
}

func (adb *AbstractDB) Close() error {
	return adb.db.Close()
}

func (adb *AbstractDB) SaveAbstract(a *Abstract) error {
	_, err := adb.db.Exec(`
		INSERT INTO abstracts (abstract_id, abstract_text, abstract_source, abstract_type)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(abstract_id) DO UPDATE SET
			abstract_text = excluded.abstract_text,
			abstract_source = excluded.abstract_source,
			abstract_type = excluded.abstract_type
	`, a.ID, a.Text, a.Source, a.Type)
	return err
}

func (adb *AbstractDB) GetAbstractByID(ctx context.Context, id int) (*Abstract, error) {
	a := &Abstract{}
	err := adb.db.QueryRowContext(ctx,
		"SELECT abstract_id, abstract_text, abstract_source, abstract_type FROM abstracts WHERE abstract_id = ?",
		id,
	).Scan(&a.ID, &a.Text, &a.Source, &a.Type)

	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAbstractIDs returns the ids matching filter in ascending order.
func (adb *AbstractDB) ListAbstractIDs(ctx context.Context, filter Filter) ([]int, error) {
	where, args := filter.where()
	rows, err := adb.db.QueryContext(ctx,
		"SELECT abstract_id FROM abstracts WHERE "+where+" ORDER BY abstract_id",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (adb *AbstractDB) GetAbstractsAfterID(ctx context.Context, filter Filter, afterID int, limit int) ([]*Abstract, error) {
	where, args := filter.where()
	args = append(args, afterID, limit)

	rows, err := adb.db.QueryContext(ctx,
		"SELECT abstract_id, abstract_text, abstract_source, abstract_type FROM abstracts WHERE "+where+
			" AND abstract_id > ? ORDER BY abstract_id LIMIT ?",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Abstract
	for rows.Next() {
		a := &Abstract{}
		if err := rows.Scan(&a.ID, &a.Text, &a.Source, &a.Type); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (adb *AbstractDB) GetTotalAbstractCount(ctx context.Context, filter Filter) (int, error) {
	where, args := filter.where()
	var count int
	err := adb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM abstracts WHERE "+where, args...).Scan(&count)
	return count, err
}

// Sources returns the distinct abstract sources in sorted order.
func (adb *AbstractDB) Sources(ctx context.Context) ([]string, error) {
	rows, err := adb.db.QueryContext(ctx, "SELECT DISTINCT abstract_source FROM abstracts ORDER BY abstract_source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}
