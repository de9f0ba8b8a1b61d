package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("Galaxy Stars", WithInstanceCount(42))

	assert.Equal(t, "Galaxy Stars", p.Label())
	assert.Equal(t, 42, p.InstanceCount())
	assert.NotNil(t, p.Buffers())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.False(t, p.Released())
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := NewBindGroupProvider("cloud")
	p.SetInstanceCount(10)
	p.SetBuffer(3, nil)

	p.Release()
	assert.True(t, p.Released())
	assert.Equal(t, 0, p.InstanceCount())
	assert.Empty(t, p.Buffers())

	assert.NotPanics(t, p.Release)
}
