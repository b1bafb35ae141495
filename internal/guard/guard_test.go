package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHost(t *testing.T) {
	assert.True(t, IsHost(7, 7))
	assert.False(t, IsHost(7, 8))
	assert.False(t, IsHost(0, 0))
	assert.False(t, IsHost(7, 0))
}

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner(3, 3))
	assert.False(t, IsOwner(3, 4))
	assert.False(t, IsOwner(0, 0))
}

func TestIsSelf(t *testing.T) {
	assert.True(t, IsSelf(1, 1))
	assert.False(t, IsSelf(1, 2))
	assert.False(t, IsSelf(0, 0))
}
