package tui

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/a4s/internal/core/notify"
)

func TestNotificationBuffer_Drain_empty_returnsNil(t *testing.T) {
	assert.Nil(t, NewNotificationBuffer().Drain())
}

func TestNotificationBuffer_PushDrain_orderAndClear(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	b.Push(notify.Notification{Level: notify.LevelWarning, Message: "second"})

	items := b.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "second", items[1].Message)
	assert.False(t, items[0].CreatedAt.IsZero())
	assert.Nil(t, b.Drain())
}

func TestNotificationBuffer_WaitForSignal_singleSignalDrainsAll(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "one"})
	b.Push(notify.Notification{Level: notify.LevelInfo, Message: "two"})

	msg := b.WaitForSignal()()
	require.IsType(t, drainNotificationsMsg{}, msg)

	assert.Len(t, b.Drain(), 2)
}

func TestNotificationBuffer_ConcurrentPush_noLoss(t *testing.T) {
	b := NewNotificationBuffer()
	const count = 200

	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Push(notify.Notification{Level: notify.LevelInfo, Message: fmt.Sprint(i)})
		}()
	}
	wg.Wait()

	assert.Len(t, b.Drain(), count)
}
