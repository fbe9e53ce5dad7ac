package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/cryptox"
	"github.com/hygieia-health/hygieia-cli/internal/dbx"
)

// Storage is the typed facade over the key/value table. Token values are
// sealed with the device key before hitting disk; snapshots are stored as
// plain JSON.
type Storage struct {
	db      *sql.DB
	repo    Repository
	sealKey []byte
}

// New wraps an already-migrated database handle. Most callers want Open.
func New(db *sql.DB, sealKey []byte) *Storage {
	return &Storage{db: db, repo: NewSQLiteRepository(db), sealKey: sealKey}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) getToken(ctx context.Context, key string) (string, error) {
	blob, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if blob == nil {
		return "", nil
	}
	token, err := cryptox.OpenValue(blob, s.sealKey)
	if err != nil {
		return "", fmt.Errorf("failed to unseal %s: %w", key, err)
	}
	return string(token), nil
}

func (s *Storage) setToken(ctx context.Context, key, token string) error {
	blob, err := cryptox.SealValue([]byte(token), s.sealKey)
	if err != nil {
		return fmt.Errorf("failed to seal %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, blob)
}

// AccessToken returns the stored access token, or "" when none is stored.
func (s *Storage) AccessToken(ctx context.Context) (string, error) {
	return s.getToken(ctx, common.KeyAccessToken)
}

func (s *Storage) SetAccessToken(ctx context.Context, token string) error {
	return s.setToken(ctx, common.KeyAccessToken, token)
}

// RefreshToken returns the stored refresh token, or "" when none is stored.
func (s *Storage) RefreshToken(ctx context.Context) (string, error) {
	return s.getToken(ctx, common.KeyRefreshToken)
}

func (s *Storage) SetRefreshToken(ctx context.Context, token string) error {
	return s.setToken(ctx, common.KeyRefreshToken, token)
}

// ClearAuth removes both tokens and the session snapshot in one
// transaction, so a failed refresh can never leave a half-cleared session.
func (s *Storage) ClearAuth(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, key := range []string{common.KeyAccessToken, common.KeyRefreshToken, common.KeySession} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveSnapshot marshals v and stores it under key.
func (s *Storage) SaveSnapshot(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, data)
}

// LoadSnapshot unmarshals the stored value into v. The second return is
// false when no snapshot exists.
func (s *Storage) LoadSnapshot(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}
	return true, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
