package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		experience int
		want       int
	}{
		{experience: -5, want: 1},
		{experience: 0, want: 1},
		{experience: 99, want: 1},
		{experience: 100, want: 2},
		{experience: 255, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForExperience(tt.experience), "experience %d", tt.experience)
	}
}

func TestProfile_ExperienceProgressAndDisplayName(t *testing.T) {
	p := &Profile{Experience: 235}
	assert.Equal(t, 35, p.ExperienceProgress())
	assert.Equal(t, "neo", p.DisplayName("neo"))

	p.Nickname = "Trinity"
	assert.Equal(t, "Trinity", p.DisplayName("neo"))

	var missing *Profile
	assert.Equal(t, 0, missing.ExperienceProgress())
	assert.Equal(t, "neo", missing.DisplayName("neo"))
}

func TestProfile_CheckedInOn(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	p := &Profile{}
	assert.False(t, p.CheckedInOn(day))

	p.LastCheckin = &day
	assert.True(t, p.CheckedInOn(day))
	assert.False(t, p.CheckedInOn(day.AddDate(0, 0, 1)))
}

func TestLandPlot_Ownership(t *testing.T) {
	owner := uuid.New()
	plot := &LandPlot{}
	assert.False(t, plot.IsOwned())
	assert.False(t, plot.IsOwnedBy(owner))

	plot.OwnerID = &owner
	assert.True(t, plot.IsOwned())
	assert.True(t, plot.IsOwnedBy(owner))
	assert.False(t, plot.IsOwnedBy(uuid.New()))
}
