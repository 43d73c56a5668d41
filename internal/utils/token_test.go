package utils

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessHash(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		hash, err := GenerateAccessHash()
		require.NoError(t, err)
		assert.Len(t, hash, 20)
		for _, c := range hash {
			assert.True(t, strings.ContainsRune(hashChars, c), "unexpected character %q", c)
		}
		assert.False(t, seen[hash], "hash repeated: %s", hash)
		seen[hash] = true
	}
}

func TestGenerateAccessUUID(t *testing.T) {
	token := GenerateAccessUUID()
	_, err := uuid.Parse(token)
	assert.NoError(t, err)
}

func TestGeneratePinCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		pin, err := GeneratePinCode()
		require.NoError(t, err)
		require.Len(t, pin, 4)

		n, err := strconv.Atoi(pin)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}
