package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString_Deterministic(t *testing.T) {
	first := HashString("secret", "key")
	second := HashString("secret", "key")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "hex-encoded sha256")
}

func TestHashString_KeySeparatesHashes(t *testing.T) {
	assert.NotEqual(t, HashString("secret", "key-a"), HashString("secret", "key-b"))
	assert.NotEqual(t, HashString("secret-a", "key"), HashString("secret-b", "key"))
}
