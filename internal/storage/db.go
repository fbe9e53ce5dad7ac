package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/cryptox"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	dbFileName     = "hygieia.db"
	secretFileName = "device.key"

	secretLen = 32
	saltLen   = 16
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, "migrations")
}

// Open initializes durable storage in dir: it opens (creating if needed)
// the sqlite database, applies migrations, and loads the device secret used
// to seal token values at rest.
func Open(ctx context.Context, dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	sealKey, err := loadDeviceKey(filepath.Join(dir, secretFileName))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, sealKey), nil
}

// loadDeviceKey reads the device secret file, creating it on first run, and
// derives the sealing key from it. The file holds secret||salt and is only
// readable by the owner.
func loadDeviceKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw = common.GenerateRandByteArray(secretLen + saltLen)
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write device key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read device key: %w", err)
	}

	if len(raw) != secretLen+saltLen {
		return nil, fmt.Errorf("device key file %s is corrupted", path)
	}

	return cryptox.DeriveStorageKey(raw[:secretLen], raw[secretLen:]), nil
}
