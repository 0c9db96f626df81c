package kv

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := New[string, []string]()

	_, ok := s.Get("c1")
	assert.False(t, ok)

	s.Set("c1", []string{"e1", "e2"})
	got, ok := s.Get("c1")
	assert.True(t, ok)
	assert.Equal(t, []string{"e1", "e2"}, got)
	assert.True(t, s.Has("c1"))

	s.Set("c1", nil)
	got, ok = s.Get("c1")
	assert.True(t, ok, "a nil value is still present")
	assert.Nil(t, got)

	s.Delete("c1")
	assert.False(t, s.Has("c1"))
	s.Delete("missing")
}

func TestStore_Retain(t *testing.T) {
	s := New[string, int]()
	for i := range 5 {
		s.Set(fmt.Sprintf("c%d", i), i)
	}

	s.Retain(func(_ string, v int) bool { return v%2 == 0 })

	for i := range 5 {
		assert.Equal(t, i%2 == 0, s.Has(fmt.Sprintf("c%d", i)))
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, struct{}]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, struct{}{})
			_ = s.Has(n)
			if n%2 == 1 {
				s.Delete(n)
			}
		}(i)
	}
	wg.Wait()

	s.Retain(func(k int, _ struct{}) bool { return k < 10 })
	for i := range 50 {
		assert.Equal(t, i < 10 && i%2 == 0, s.Has(i))
	}
}
