package storage

const Schema = `
-- One row per bulk extraction run
CREATE TABLE IF NOT EXISTS extraction_runs (
    run_id TEXT PRIMARY KEY,
    method TEXT NOT NULL,
    abstract_source TEXT NOT NULL DEFAULT '',
    abstract_type TEXT NOT NULL DEFAULT '',
    sample_percentage REAL NOT NULL DEFAULT 1,
    abstract_count INTEGER NOT NULL DEFAULT 0,
    failed_count INTEGER NOT NULL DEFAULT 0,
    started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    finished_at DATETIME
);

-- Extracted keywords: scored candidate phrases per abstract
CREATE TABLE IF NOT EXISTS extracted_keywords (
    keyword_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    abstract_id INTEGER NOT NULL,
    keyword TEXT NOT NULL,
    score REAL NOT NULL,
    occurrences INTEGER NOT NULL DEFAULT 1,
    method TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES extraction_runs(run_id)
);
CREATE INDEX IF NOT EXISTS idx_extracted_keywords_abstract ON extracted_keywords(abstract_id, method);
CREATE INDEX IF NOT EXISTS idx_extracted_keywords_run ON extracted_keywords(run_id);

-- Abstracts whose keywords were written, per method
-- This prevents reprocessing and allows resumable runs
CREATE TABLE IF NOT EXISTS extracted_abstracts (
    abstract_id INTEGER NOT NULL,
    method TEXT NOT NULL,
    run_id TEXT NOT NULL,
    keyword_count INTEGER NOT NULL,
    extracted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (abstract_id, method)
);

-- Global extraction state
CREATE TABLE IF NOT EXISTS extraction_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO extraction_metadata (key, value) VALUES
    ('schema_version', '1'),
    ('last_run_id', '');
`
