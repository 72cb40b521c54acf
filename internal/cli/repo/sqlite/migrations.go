package sqlite

// Схема локального журнала клиента (SQLite).
const initDDL = `
CREATE TABLE IF NOT EXISTS attempts (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    success    INTEGER NOT NULL DEFAULT 0,
    similarity REAL NOT NULL DEFAULT 0,
    message    TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at);
`

func initialDDL() string { return initDDL }
