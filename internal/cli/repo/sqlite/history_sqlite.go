package sqlite

import (
	"VoiceKeeper/internal/cli/model"
	"VoiceKeeper/internal/cli/repo"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// HistorySQLite — журнал проверок в локальной БД SQLite.
type HistorySQLite struct {
	db *sql.DB
}

var _ repo.HistoryRepository = (*HistorySQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД журнала.
func Open(path string) (*HistorySQLite, error) {
	if path == "" {
		return nil, errors.New("empty history db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &HistorySQLite{db: db}, nil
}

// OpenAndMigrate — Open + Migrate, при ошибке миграции соединение закрывается.
func OpenAndMigrate(path string) (*HistorySQLite, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return r, nil
}

// Close закрывает соединение с БД.
func (r *HistorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (r *HistorySQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

// Add сохраняет попытку. Пустые ID и CreatedAt заполняются.
func (r *HistorySQLite) Add(ctx context.Context, a *model.Attempt) (string, error) {
	if a.Kind != model.KindVerify && a.Kind != model.KindDetect {
		return "", fmt.Errorf("unknown attempt kind: %q", a.Kind)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixMilli()
	}
	success := 0
	if a.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts(id, kind, success, similarity, message, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		a.ID, a.Kind, success, a.Similarity, a.Message, a.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// List возвращает последние попытки, новые первыми. limit <= 0 — без ограничения.
func (r *HistorySQLite) List(ctx context.Context, limit int) ([]model.Attempt, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, success, similarity, message, created_at FROM attempts ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var ok int
		if err := rows.Scan(&a.ID, &a.Kind, &ok, &a.Similarity, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Success = ok != 0
		res = append(res, a)
	}
	return res, rows.Err()
}
