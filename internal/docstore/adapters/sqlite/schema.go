// Package sqlite реализует встроенное хранилище документов поверх SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // регистрирует драйвер sqlite3
	"go.uber.org/zap"

	"notegrid/pkg/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT NOT NULL UNIQUE,
    collection TEXT NOT NULL,
    fields     TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_collection_seq ON documents (collection, seq);
`

// Константы сообщений.
const (
	LogOpening     = "opening SQLite document store"
	LogOpened      = "SQLite document store ready"
	ErrOpen        = "failed to open sqlite database"
	ErrApplySchema = "failed to apply sqlite schema"
)

// Open открывает базу SQLite по пути path и применяет схему.
// Путь ":memory:" создает временную базу.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	log := logger.Log(ctx).With(zap.String("path", path))
	log.Info(ctx, LogOpening)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Error(ctx, ErrOpen, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrOpen, err)
	}

	// SQLite сериализует запись; одно соединение также сохраняет :memory: базу.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		log.Error(ctx, ErrApplySchema, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrApplySchema, err)
	}

	log.Info(ctx, LogOpened)
	return db, nil
}
