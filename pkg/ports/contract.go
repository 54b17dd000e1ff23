package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a state
		state := domain.NewState(sessionID)
		state.Visit("fruits")
		state.Expanded["fruits"] = true
		state.Scroll = domain.Scroll{Offset: 3.5, Min: 0, Max: 10}
		state.Attrs["user"] = "ada"
		state.Attrs["count"] = 42

		// 2. Save
		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CursorID, loaded.CursorID)
		assert.Equal(t, state.Scroll, loaded.Scroll)
		assert.True(t, loaded.Expanded["fruits"])
		assert.Equal(t, "ada", loaded.Attrs["user"])
		// JSON persistence converts int to float64, so only check presence here.
		assert.NotNil(t, loaded.Attrs["count"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 sessions
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
