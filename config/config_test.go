package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Economy)
	assert.Equal(t, 100, cfg.Economy.StartingCoins)
	assert.Equal(t, 10, cfg.Economy.CheckinCoins)
	assert.Equal(t, 5, cfg.Economy.CheckinExperience)
	assert.Equal(t, 5, cfg.Economy.NodeReward)
	assert.Equal(t, "UTC", cfg.Economy.Timezone)
	require.NotNil(t, cfg.Assistant)
	assert.Equal(t, defaultAssistantModel, cfg.Assistant.Model)
	assert.Equal(t, 30*time.Second, cfg.Assistant.Timeout)
	require.NotNil(t, cfg.Media)
	assert.Equal(t, int64(defaultMaxAvatarSize), cfg.Media.MaxAvatarSize)
	assert.NotNil(t, cfg.Catalog)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Economy:   &EconomyConfig{Timezone: "Asia/Taipei", CheckinCoins: 25},
		Assistant: &AssistantConfig{Model: "gemini-2.0-flash", Timeout: time.Second},
	}

	applyDefaults(cfg)

	assert.Equal(t, "Asia/Taipei", cfg.Economy.Timezone)
	assert.Equal(t, 25, cfg.Economy.CheckinCoins)
	assert.Equal(t, "gemini-2.0-flash", cfg.Assistant.Model)
	assert.Equal(t, time.Second, cfg.Assistant.Timeout)
}

func TestEconomyConfig_Location(t *testing.T) {
	var nilCfg *EconomyConfig
	assert.Equal(t, time.UTC, nilCfg.Location())

	assert.Equal(t, time.UTC, (&EconomyConfig{Timezone: "Not/AZone"}).Location())

	loc := (&EconomyConfig{Timezone: "Asia/Taipei"}).Location()
	assert.Equal(t, "Asia/Taipei", loc.String())
}
