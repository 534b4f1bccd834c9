package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestNewAPIKey(t *testing.T) {
	key := NewAPIKey()
	assert.True(t, strings.HasPrefix(key, "pk_"))
	assert.Len(t, key, 67) // "pk_" + 64 hex chars
	assert.NotEqual(t, key, NewAPIKey())
}
