package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loyalty-system/internal/domain"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	ana := domain.Customer{ID: "cust-1", Name: "Ana"}

	token := r.Create(ana)
	assert.NotEmpty(t, token)

	got, ok := r.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, ana, got)

	r.Drop(token)
	_, ok = r.Resolve(token)
	assert.False(t, ok)
}

func TestRegistryUnknownToken(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Resolve("nope")
	assert.False(t, ok)
	_, ok = r.Resolve("")
	assert.False(t, ok)
}

func TestRegistryTokensAreUnique(t *testing.T) {
	r := NewRegistry()
	ana := domain.Customer{ID: "cust-1"}
	assert.NotEqual(t, r.Create(ana), r.Create(ana))
}
