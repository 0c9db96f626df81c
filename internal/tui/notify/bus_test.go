package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/a4s/internal/core/notify"
)

type failingStore struct{ notify.Store }

func (failingStore) Save(context.Context, notify.Notification) (int64, error) {
	return 0, errors.New("disk full")
}

func TestBus_LevelsReachSubscribersInOrder(t *testing.T) {
	bus := NewBus(notify.NewMemoryStore(0))

	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = append(got, n) })

	bus.Error("Error", "Failed to load crews.")
	bus.Info("Crew Created", `"nightly" is ready to execute.`)
	bus.Warn("Invalid Payload", "payload is not valid JSON")

	require.Len(t, got, 3)

	levels := []notify.Level{got[0].Level, got[1].Level, got[2].Level}
	assert.Equal(t, []notify.Level{notify.LevelError, notify.LevelInfo, notify.LevelWarning}, levels)
	assert.Equal(t, "Crew Created", got[1].Title)
	for i, n := range got {
		assert.Equal(t, int64(i+1), n.ID, "ids come from the store")
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestBus_EverySubscriberSeesEachNotification(t *testing.T) {
	bus := NewBus(nil)

	var toasts, printed int
	bus.Subscribe(func(notify.Notification) { toasts++ })
	bus.Subscribe(func(notify.Notification) { printed++ })

	bus.Info("Status Updated", "c1 is running")
	bus.Info("Status Updated", "c2 is idle")

	assert.Equal(t, 2, toasts)
	assert.Equal(t, 2, printed)
}

func TestBus_HistoryAndClear(t *testing.T) {
	bus := NewBus(notify.NewMemoryStore(2))

	bus.Info("Crew Created", "one")
	bus.Info("Crew Created", "two")
	bus.Info("Crew Created", "three")

	history, err := bus.History()
	require.NoError(t, err)
	require.Len(t, history, 2, "memory store keeps the newest two")
	assert.Equal(t, "three", history[0].Message)
	assert.Equal(t, "two", history[1].Message)

	require.NoError(t, bus.Clear())
	history, err = bus.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestBus_WithoutStore(t *testing.T) {
	bus := NewBus(nil)

	var got notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = n })
	bus.Error("Error", "Failed to delete crew.")

	assert.Equal(t, "Failed to delete crew.", got.Message)
	assert.Zero(t, got.ID)

	history, err := bus.History()
	assert.NoError(t, err)
	assert.Nil(t, history)
	assert.NoError(t, bus.Clear())
}

func TestBus_StoreFailureStillDispatches(t *testing.T) {
	bus := NewBus(failingStore{})

	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) { got = append(got, n) })
	bus.Warn("Sync", "Failed to sync crew status.")

	require.Len(t, got, 1)
	assert.Zero(t, got[0].ID)
}
