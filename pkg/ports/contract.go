package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := domain.NewSessionRecord(sessionID)
		rec.UserID = "user-1"
		rec.Turns = 3
		rec.Answers["preferredSpecies"] = "people"
		rec.LastPrompt = "What bloodTolerance are you looking for"
		rec.Outcome = &domain.Outcome{Index: 0, Name: "Actor"}
		rec.Status = domain.SessionRecommended
		rec.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		require.NoError(t, store.Save(ctx, sessionID, rec), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, "user-1", loaded.UserID)
		assert.Equal(t, 3, loaded.Turns)
		assert.Equal(t, "people", loaded.Answers["preferredSpecies"])
		assert.Equal(t, rec.LastPrompt, loaded.LastPrompt)
		require.NotNil(t, loaded.Outcome)
		assert.Equal(t, "Actor", loaded.Outcome.Name)
		assert.Equal(t, domain.SessionRecommended, loaded.Status)
		assert.True(t, rec.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		rec := domain.NewSessionRecord(sessionID)
		require.NoError(t, store.Save(ctx, sessionID, rec))

		rec.Answers["personality"] = "introvert"
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotContains(t, loaded.Answers, "personality")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSessionRecord(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSessionRecord(id1)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSessionRecord(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
