package graphics

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/anima-gfx/engine/core"
	"github.com/spaghettifunk/anima-gfx/engine/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullBackendIsRegistered(t *testing.T) {
	assert.Contains(t, Backends(), BackendNull)

	backend, err := NewBackend(BackendNull)
	require.NoError(t, err)
	assert.Equal(t, BackendNull, backend.Name)
	assert.Equal(t, "Null", backend.Driver.Name())
	assert.IsType(t, &platform.HeadlessWindow{}, backend.Window)
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewBackend("metal")
	assert.ErrorIs(t, err, core.ErrUnknownBackend)
}

func TestRegisterBackend(t *testing.T) {
	failure := errors.New("no gpu")
	RegisterBackend("broken", func() (*Backend, error) { return nil, failure })
	defer UnregisterBackend("broken")

	assert.Equal(t, []string{"broken", BackendNull}, filter(Backends(), "broken", BackendNull))
	_, err := NewBackend("broken")
	assert.ErrorIs(t, err, failure)

	UnregisterBackend("broken")
	assert.NotContains(t, Backends(), "broken")
}

func filter(names []string, keep ...string) []string {
	var out []string
	for _, name := range names {
		for _, k := range keep {
			if name == k {
				out = append(out, name)
			}
		}
	}
	return out
}
