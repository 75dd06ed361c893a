package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeEnvKey_PlazaSections(t *testing.T) {
	existing := map[string]any{
		"economy": map[string]any{
			"checkinCoins": 10,
		},
		"assistant": map[string]any{
			"apiKey":   "",
			"proxyUrl": "",
		},
		"media": map[string]any{
			"bucketUrl": "mem://",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "ECONOMY_CHECKINCOINS", want: "economy.checkinCoins"},
		{envKey: "ASSISTANT_APIKEY", want: "assistant.apiKey"},
		{envKey: "ASSISTANT_PROXYURL", want: "assistant.proxyUrl"},
		{envKey: "MEDIA_BUCKETURL", want: "media.bucketUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
