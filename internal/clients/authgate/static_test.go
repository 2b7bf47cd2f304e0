package authgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticGate(t *testing.T) {
	gate := NewStaticGate("owner")

	assert.True(t, gate.IsPrivileged("owner"))
	assert.False(t, gate.IsPrivileged("mallory"))
	assert.False(t, gate.IsPrivileged(""))

	// an empty owner grants nobody, not everybody
	empty := NewStaticGate("")
	assert.False(t, empty.IsPrivileged(""))
}
