package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/promptline/pkg/errors"
)

func TestRegisterAndGet(t *testing.T) {
	reg := New[string]()

	require.NoError(t, reg.Register("one", "first"))

	got, err := reg.Get("one")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestRegisterEmptyName(t *testing.T) {
	reg := New[int]()
	err := reg.Register("", 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRegisterDuplicate(t *testing.T) {
	reg := New[int]()
	require.NoError(t, reg.Register("dup", 1))

	err := reg.Register("dup", 2)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	// Original entry is untouched.
	got, err := reg.Get("dup")
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestGetMissing(t *testing.T) {
	reg := New[int]()
	_, err := reg.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestListIsSorted(t *testing.T) {
	reg := New[int]()
	for i, name := range []string{"zebra", "apple", "mango"} {
		require.NoError(t, reg.Register(name, i))
	}
	assert.Equal(t, []string{"apple", "mango", "zebra"}, reg.List())
}

func TestHasAndCount(t *testing.T) {
	reg := New[int]()
	assert.False(t, reg.Has("x"))
	assert.Equal(t, 0, reg.Count())

	require.NoError(t, reg.Register("x", 1))
	assert.True(t, reg.Has("x"))
	assert.Equal(t, 1, reg.Count())
}

func TestMustRegisterPanics(t *testing.T) {
	reg := New[int]()
	MustRegister(reg, "x", 1)
	assert.Panics(t, func() {
		MustRegister(reg, "x", 2)
	})
}

func TestConcurrentAccess(t *testing.T) {
	reg := New[int]()
	require.NoError(t, reg.Register("shared", 1))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = reg.Get("shared")
			_ = reg.Has("shared")
			_ = reg.List()
		}()
	}
	wg.Wait()
}
