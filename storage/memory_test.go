package storage

import (
	"context"
	"testing"

	"github.com/solonlabs/mentor/model"
)

func TestInMemoryStoreSaveAndLoad(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	conversation := model.Conversation{
		model.UserTurn("Please explain this code"),
		model.AssistantTurn("It prints hi"),
	}

	if err := store.Save(ctx, "test-session", conversation); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Errorf("expected 2 turns, got %d", len(loaded))
	}
	if loaded[0].Body != "Please explain this code" {
		t.Errorf("expected user turn body, got '%s'", loaded[0].Body)
	}
	if loaded[1].Body != "It prints hi" {
		t.Errorf("expected assistant turn body, got '%s'", loaded[1].Body)
	}
}

func TestInMemoryStoreLoadNonexistentSession(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	loaded, err := store.Load(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected empty conversation, got %v", loaded)
	}
}

func TestInMemoryStoreDeleteSession(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	conversation := model.Conversation{
		model.UserTurn("Test"),
	}

	if err := store.Save(ctx, "test-session", conversation); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	exists, err := store.Exists(ctx, "test-session")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected session to exist")
	}

	if err := store.Delete(ctx, "test-session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err = store.Exists(ctx, "test-session")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected session to not exist after deletion")
	}
}

func TestInMemoryStoreListSessions(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	conversation := model.Conversation{
		model.UserTurn("Test"),
	}

	if err := store.Save(ctx, "session-1", conversation); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "session-2", conversation); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sessions, err := store.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}

	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}

	found1, found2 := false, false
	for _, s := range sessions {
		if s == "session-1" {
			found1 = true
		}
		if s == "session-2" {
			found2 = true
		}
	}

	if !found1 || !found2 {
		t.Errorf("expected to find both sessions, found1=%v found2=%v", found1, found2)
	}
}

func TestInMemoryStoreIsolation(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	original := model.Conversation{
		model.UserTurn("Original"),
	}
	if err := store.Save(ctx, "test-session", original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Modify the original conversation
	original[0].Body = "Modified"

	// Load and verify the stored copy is not affected
	loaded, err := store.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded[0].Body != "Original" {
		t.Errorf("expected 'Original', got '%s' - store should copy data", loaded[0].Body)
	}

	// Mutating a loaded copy must not change the next load either
	loaded[0].Body = "Mutated"
	again, err := store.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again[0].Body != "Original" {
		t.Errorf("expected 'Original', got '%s' - loads should be independent", again[0].Body)
	}
}
