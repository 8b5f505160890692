package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r-Secret!")
	assert.NoError(t, err)
	assert.NotEqual(t, "Sup3r-Secret!", hash)

	assert.True(t, VerifyPassword(hash, "Sup3r-Secret!"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
