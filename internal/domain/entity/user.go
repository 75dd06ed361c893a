// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExperiencePerLevel is the amount of experience that raises a profile by one level.
const ExperiencePerLevel = 100

// User is the core entity in the system, representing a unique "person" or "account".
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username  string    // Login name, unique across the plaza.
	Profile   *Profile  // The game state of this account. Created in the same transaction as the user.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// Profile holds the mutable per-account game state.
type Profile struct {
	UserID      uuid.UUID  // Foreign Key that links this profile to a core User entity.
	Nickname    string     // Optional display name shown instead of the username.
	AvatarKey   string     // Object key of the uploaded avatar in the media bucket.
	Bio         string     // Free-form self introduction.
	Coins       int        // Plaza currency balance.
	Level       int        // Derived from Experience, starts at 1.
	Experience  int        // Accumulated experience points.
	LastCheckin *time.Time // Calendar date of the last daily check-in, nil if never.
	UpdatedAt   time.Time  // Timestamp of the last modification to this profile.
}

// DisplayName returns the nickname when set, otherwise the fallback (usually the username).
func (p *Profile) DisplayName(fallback string) string {
	if p == nil || p.Nickname == "" {
		return fallback
	}

	return p.Nickname
}

// ExperienceProgress is the percentage towards the next level.
func (p *Profile) ExperienceProgress() int {
	if p == nil || p.Experience < 0 {
		return 0
	}

	return p.Experience % ExperiencePerLevel
}

// CheckedInOn reports whether the last check-in falls on the given calendar day.
func (p *Profile) CheckedInOn(day time.Time) bool {
	if p == nil || p.LastCheckin == nil {
		return false
	}

	y1, m1, d1 := p.LastCheckin.Date()
	y2, m2, d2 := day.Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}

// LevelForExperience maps total experience to a level.
func LevelForExperience(experience int) int {
	if experience < 0 {
		return 1
	}

	return 1 + experience/ExperiencePerLevel
}
