// Package storage provides in-memory transcript storage.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind interface
// - Suitable for testing and ephemeral sessions

package storage

import (
	"context"
	"sync"

	"github.com/solonlabs/mentor/model"
)

// InMemoryStore implements TranscriptStore using an in-memory map.
// Data is lost when the process terminates.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Conversation
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]model.Conversation),
	}
}

// Save replaces the stored transcript for a session.
func (s *InMemoryStore) Save(ctx context.Context, sessionID string, conversation model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external mutations
	s.sessions[sessionID] = conversation.Clone()
	return nil
}

// Load loads the transcript for a session.
// Returns an empty conversation if the session doesn't exist.
func (s *InMemoryStore) Load(ctx context.Context, sessionID string) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conversation, ok := s.sessions[sessionID]
	if !ok {
		return model.Conversation{}, nil
	}

	// Return a copy to avoid external mutations
	return conversation.Clone(), nil
}

// Delete deletes the transcript for a session.
func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// ListSessions lists all session IDs.
func (s *InMemoryStore) ListSessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.sessions))
	for sessionID := range s.sessions {
		sessions = append(sessions, sessionID)
	}
	return sessions, nil
}

// Exists checks if a session exists.
func (s *InMemoryStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok, nil
}

// Verify InMemoryStore implements TranscriptStore
var _ TranscriptStore = (*InMemoryStore)(nil)
