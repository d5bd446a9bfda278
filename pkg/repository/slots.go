package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/remihq/remi/pkg/domain"
)

// slotRepository persists named state slots as JSON payloads. Each slot is
// rewritten whole whenever its part of the application state changes and read
// once at startup. Timestamps inside payloads round-trip as RFC 3339 strings
// via encoding/json.
type slotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *slotRepository {
	return &slotRepository{db: db}
}

func (s *slotRepository) Save(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling slot %q: %w", name, err)
	}

	const query = `
		INSERT INTO state_slots (name, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, name, string(data)); err != nil {
		return fmt.Errorf("saving slot %q: %w", name, err)
	}
	return nil
}

func (s *slotRepository) Load(ctx context.Context, name string, out any) error {
	const query = `SELECT payload FROM state_slots WHERE name = ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("fetching slot %q: %w", name, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("unmarshaling slot %q: %w", name, err)
	}
	return nil
}
