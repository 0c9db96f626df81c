package a4s

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("send_notification"))
	assert.True(t, s.Toggle("fetch_code"))
	assert.Equal(t, []string{"send_notification", "fetch_code"}, s.IDs())

	assert.False(t, s.Toggle("send_notification"))
	assert.Equal(t, []string{"fetch_code"}, s.IDs())
	assert.False(t, s.Has("send_notification"))
	assert.Equal(t, 1, s.Len())
}

func TestSelection_TasksFollowCatalogOrder(t *testing.T) {
	s := NewSelection()
	s.Toggle("create_ticket")
	s.Toggle("fetch_code")

	tasks := s.Tasks()
	if assert.Len(t, tasks, 2) {
		assert.Equal(t, "fetch_code", tasks[0].ID)
		assert.Equal(t, "create_ticket", tasks[1].ID)
	}
}

func TestSelection_IDsIsACopy(t *testing.T) {
	s := NewSelection()
	s.Toggle("fetch_code")

	ids := s.IDs()
	ids[0] = "mutated"

	assert.True(t, s.Has("fetch_code"))
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle("fetch_code")
	s.Toggle("analyze_code")

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Empty(t, s.IDs())
}
