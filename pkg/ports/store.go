package ports

import (
	"context"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// SessionStore defines the interface for persisting session records.
type SessionStore interface {
	// Save persists the record for a given session ID.
	Save(ctx context.Context, sessionID string, record *domain.SessionRecord) error

	// Load retrieves the record for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error)

	// Delete removes the record for a given session ID.
	// Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
