package repository

import (
	"context"
	"fmt"

	"github.com/linkvigia/linkvigia/internal/model"
)

// UpsertAPIKey stores an encrypted credential for (user, key type).
// A second save for the same pair replaces the stored value and
// refreshes its timestamp.
func (r *Repository) UpsertAPIKey(ctx context.Context, key *model.APIKey) error {
	query := `
		INSERT INTO api_keys (id, user_id, key_type, key_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, key_type)
		DO UPDATE SET key_value = EXCLUDED.key_value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		key.ID,
		key.UserID,
		string(key.KeyType),
		key.KeyValue,
		key.CreatedAt,
		key.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert API key: %w", err)
	}

	return nil
}

// GetKeyStatus reports, for each known key type, whether the user has
// a stored value. The values themselves are never returned.
func (r *Repository) GetKeyStatus(ctx context.Context, userID string) (model.KeyStatus, error) {
	query := `
		SELECT key_type
		FROM api_keys
		WHERE user_id = $1
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get key status: %w", err)
	}
	defer rows.Close()

	status := make(model.KeyStatus, len(model.ValidKeyTypes))
	for _, kt := range model.ValidKeyTypes {
		status[kt] = false
	}

	for rows.Next() {
		var keyType string
		if err := rows.Scan(&keyType); err != nil {
			return nil, fmt.Errorf("failed to scan key type: %w", err)
		}
		if kt, err := model.ParseKeyType(keyType); err == nil {
			status[kt] = true
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating key types: %w", err)
	}

	return status, nil
}
