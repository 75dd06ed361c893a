// Package service declares the ports the usecases need from infrastructure.
package service

// PasswordHasher turns resident passwords into stored hashes.
type PasswordHasher interface {
	// Hash rejects weak passwords with domainerrors.ErrPasswordStrength before hashing.
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
