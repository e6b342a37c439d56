package stale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardDiscardsSuperseded(t *testing.T) {
	var g Guard

	first := g.Next()
	second := g.Next()

	assert.False(t, g.Latest(first), "older ticket must be stale")
	assert.True(t, g.Latest(second))

	third := g.Next()
	assert.False(t, g.Latest(second))
	assert.True(t, g.Latest(third))
}

func TestGuardsAreIndependent(t *testing.T) {
	var customers, transactions Guard

	c := customers.Next()
	_ = transactions.Next()
	_ = transactions.Next()

	assert.True(t, customers.Latest(c), "another resource's requests must not invalidate this one")
}
