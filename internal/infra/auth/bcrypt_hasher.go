// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"plaza/config"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 72 // bcrypt ignores bytes beyond 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	h := &bcryptHasher{cost: bcrypt.DefaultCost}
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		h.cost = cfg.Auth.BcryptCost
	}
	if cfg.PasswordStrength != nil {
		h.policy = *cfg.PasswordStrength
	}
	if h.policy.MinLength <= 0 {
		h.policy.MinLength = defaultMinPasswordLength
	}
	if h.policy.MaxLength <= 0 || h.policy.MaxLength > defaultMaxPasswordLength {
		h.policy.MaxLength = defaultMaxPasswordLength
	}

	return h
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.validate(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) validate(password string) error {
	var problems []string

	length := utf8.RuneCountInString(password)
	if length < h.policy.MinLength {
		problems = append(problems, fmt.Sprintf("至少需要 %d 個字元", h.policy.MinLength))
	}
	if len(password) > h.policy.MaxLength {
		problems = append(problems, fmt.Sprintf("不可超過 %d 個位元組", h.policy.MaxLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.policy.RequireUppercase && !hasUpper {
		problems = append(problems, "需要大寫字母")
	}
	if h.policy.RequireLowercase && !hasLower {
		problems = append(problems, "需要小寫字母")
	}
	if h.policy.RequireNumbers && !hasNumber {
		problems = append(problems, "需要數字")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		problems = append(problems, "需要特殊符號")
	}

	if len(problems) > 0 {
		return domainerrors.ErrPasswordStrength.WithDetails(strings.Join(problems, "、"))
	}

	return nil
}
