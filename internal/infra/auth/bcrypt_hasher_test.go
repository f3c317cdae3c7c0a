package auth

import (
	"testing"

	"roster/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "Str0ng!Pw"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password verifies, anything else does not.
	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("Wr0ng!Pw!", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_SaltIsRandomPerCall(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("Str0ng!Pw")
	assert.NoError(t, err)
	second, err := hasher.Hash("Str0ng!Pw")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Str0ng!Pw", first))
	assert.True(t, hasher.Check("Str0ng!Pw", second))
}

func TestBcryptHasher_MalformedHashReadsAsMismatch(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("Str0ng!Pw", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("Str0ng!Pw", ""))
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("Str0ng!Pw")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher, ok := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.True(t, ok)
	assert.Equal(t, 12, hasher.cost)
}
