package auth

import (
	"testing"

	"plaza/config"
	domainerrors "plaza/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strictConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        64,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		},
	}
}

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(strictConfig())

	strongPassword := "StrongPass123!"
	hash, err := hasher.Hash(strongPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Check(strongPassword, hash))
}

func TestBcryptHasher_HashWithWeakPassword(t *testing.T) {
	hasher := NewBcryptHasher(strictConfig())

	weakPasswords := []string{
		"Ab1!",        // Too short
		"PASSWORD123!", // No lowercase
		"password123!", // No uppercase
		"PasswordABC!", // No numbers
		"Password123",  // No special characters
	}

	for _, weakPassword := range weakPasswords {
		_, err := hasher.Hash(weakPassword)
		require.Error(t, err, "Expected error for weak password: %s", weakPassword)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "PASSWORD_STRENGTH", appErr.ErrorCode())
		assert.NotEmpty(t, appErr.Details())
	}
}

func TestBcryptHasher_DefaultPolicyOnlyChecksLength(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	_, err := hasher.Hash("short")
	assert.Error(t, err)

	hash, err := hasher.Hash("longenoughpassword")
	require.NoError(t, err)
	assert.True(t, hasher.Check("longenoughpassword", hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(strictConfig())
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
}
