package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tailscale/hujson"

	"bkl/internal/typeconfig"
)

// SaveTypeConfig persists the reconciled configuration verbatim as JSON.
func (s *Store) SaveTypeConfig(ctx context.Context, cfg typeconfig.TypeConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save type config: marshal: %w", err)
	}

	_, err = s.sql.ExecContext(ctx, `
		INSERT INTO type_config (id, json, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET json = excluded.json, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("save type config: %w", err)
	}

	return nil
}

// LoadTypeConfig returns the stored configuration, or nil on first run.
// The JSON is standardized through hujson first, so a config row edited by
// hand (comments, trailing commas) still loads.
func (s *Store) LoadTypeConfig(ctx context.Context) (*typeconfig.TypeConfig, error) {
	row := s.sql.QueryRowContext(ctx, `SELECT json FROM type_config WHERE id = 1`)

	var raw string

	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load type config: %w", err)
	}

	standardized, err := hujson.Standardize([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("load type config: standardize: %w", err)
	}

	var cfg typeconfig.TypeConfig

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return nil, fmt.Errorf("load type config: unmarshal: %w", err)
	}

	return &cfg, nil
}
