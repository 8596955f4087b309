package emit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmitter struct {
	name string
}

func (s stubEmitter) Name() string { return s.name }

func (s stubEmitter) Emit(context.Context, Request) ([]Artifact, []Warning, error) {
	return nil, nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(stubEmitter{name: "typescript"}))

	emitter, err := registry.Get("typescript")
	require.NoError(t, err)
	assert.Equal(t, "typescript", emitter.Name())

	_, err = registry.Get("rust")
	assert.Error(t, err)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(stubEmitter{name: "python"}))
	assert.Error(t, registry.Register(stubEmitter{name: "python"}))
}

func TestRegistryRejectsInvalidEmitters(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(stubEmitter{name: ""}))
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubEmitter{name: "typescript"})
	registry.MustRegister(stubEmitter{name: "python"})

	assert.Equal(t, []string{"python", "typescript"}, registry.List())
	assert.True(t, registry.Has("python"))
	assert.False(t, registry.Has("rust"))
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubEmitter{name: "typescript"})

	assert.Panics(t, func() {
		registry.MustRegister(stubEmitter{name: "typescript"})
	})
}
