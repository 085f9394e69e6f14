package model

import (
	"errors"
	"time"
)

// KeyType identifies which third-party service a stored credential belongs to.
type KeyType string

// Known key types.
const (
	KeyTypeOpenAI   KeyType = "openai"
	KeyTypeSendGrid KeyType = "sendgrid"
	KeyTypeAhrefs   KeyType = "ahrefs"
)

// ValidKeyTypes contains all valid key type values, in status-report order.
var ValidKeyTypes = []KeyType{KeyTypeOpenAI, KeyTypeSendGrid, KeyTypeAhrefs}

// ErrUnknownKeyType indicates a key type outside the known set.
var ErrUnknownKeyType = errors.New("unknown key type")

// ParseKeyType converts a caller-supplied key type string into a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	switch KeyType(s) {
	case KeyTypeOpenAI, KeyTypeSendGrid, KeyTypeAhrefs:
		return KeyType(s), nil
	default:
		return "", ErrUnknownKeyType
	}
}

// APIKey represents an encrypted third-party credential owned by a user.
// Unique per (user_id, key_type); a second save replaces the value.
type APIKey struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	KeyType   KeyType   `json:"key_type"`
	KeyValue  string    `json:"-"` // AES-GCM envelope, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyStatus reports, per known key type, whether a value is stored.
// Values themselves are never reported.
type KeyStatus map[KeyType]bool
