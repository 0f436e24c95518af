// Package storage provides transcript storage abstraction.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Allows swapping between memory and SQLite without API changes
// - Each storage implementation encapsulates its own data structures and protocols

package storage

import (
	"context"

	"github.com/solonlabs/mentor/model"
)

// TranscriptStore defines the interface for storing conversation transcripts
// keyed by session ID.
type TranscriptStore interface {
	// Save replaces the stored transcript for a session.
	Save(ctx context.Context, sessionID string, conversation model.Conversation) error

	// Load loads the transcript for a session.
	// Returns an empty conversation (not nil) if the session doesn't exist.
	// Returns error only for storage failures (I/O errors, etc.), not missing sessions.
	Load(ctx context.Context, sessionID string) (model.Conversation, error)

	// Delete deletes the transcript for a session.
	Delete(ctx context.Context, sessionID string) error

	// ListSessions lists all session IDs.
	ListSessions(ctx context.Context) ([]string, error)

	// Exists checks if a session exists.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
