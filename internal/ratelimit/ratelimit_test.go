package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBurstThenDenied(t *testing.T) {
	krl := New(1, 3)
	defer krl.Stop()

	assert.True(t, krl.Allow("acc-1"))
	assert.True(t, krl.Allow("acc-1"))
	assert.True(t, krl.Allow("acc-1"))
	assert.False(t, krl.Allow("acc-1"))
}

func TestKeysAreIndependent(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("acc-1"))
	assert.False(t, krl.Allow("acc-1"))
	assert.True(t, krl.Allow("acc-2"))
}
