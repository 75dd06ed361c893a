package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "2MB"
	defaultTimezone           = "UTC"
	defaultStartingCoins      = 100
	defaultCheckinCoins       = 10
	defaultCheckinExperience  = 5
	defaultNodeReward         = 5
	defaultAssistantModel     = "gemini-2.5-flash"
	defaultAssistantTimeout   = 30 * time.Second
	defaultMaxAvatarSize      = 2 << 20
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// CookieSecure marks session, flash and CSRF cookies as Secure.
		CookieSecure bool `json:"cookieSecure" yaml:"cookieSecure"`
		Timeouts     struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// AutoMigrate runs gorm AutoMigrate on startup.
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`

	// SlowQueryThreshold marks SQL statements logged as slow. Zero means 200ms.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	Economy *EconomyConfig `json:"economy" yaml:"economy"`

	// Assistant configures the Gemini-backed plaza assistant
	Assistant *AssistantConfig `json:"assistant" yaml:"assistant"`

	Media *MediaConfig `json:"media" yaml:"media"`

	// QRCode configuration for tip QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for economy event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Catalog holds the shop items and land plots seeded on startup
	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost      int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// EconomyConfig defines rewards and the calendar used for daily check-ins
type EconomyConfig struct {
	// IANA zone name that decides when a new check-in day starts
	Timezone          string `json:"timezone" yaml:"timezone"`
	StartingCoins     int    `json:"startingCoins" yaml:"startingCoins"`
	CheckinCoins      int    `json:"checkinCoins" yaml:"checkinCoins"`
	CheckinExperience int    `json:"checkinExperience" yaml:"checkinExperience"`
	NodeReward        int    `json:"nodeReward" yaml:"nodeReward"`
}

// Location resolves Timezone, falling back to UTC.
func (c *EconomyConfig) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// AssistantConfig defines the remote text generation settings
type AssistantConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`
	Model  string `json:"model" yaml:"model"`
	// Optional HTTP/HTTPS proxy for outbound calls, e.g. http://127.0.0.1:7890
	ProxyURL string        `json:"proxyUrl" yaml:"proxyUrl"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// MediaConfig defines where uploaded avatars and item images live
type MediaConfig struct {
	// gocloud.dev bucket URL: file:///var/plaza/media, mem://, gs://bucket, s3://bucket
	BucketURL     string `json:"bucketUrl" yaml:"bucketUrl"`
	MaxAvatarSize int64  `json:"maxAvatarSize" yaml:"maxAvatarSize"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "none", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// PublishTimeout bounds a single publish, including the broker ack. Zero means 10s.
	PublishTimeout time.Duration `json:"publishTimeout" yaml:"publishTimeout"`
}

// CatalogConfig lists reference data upserted by name on startup
type CatalogConfig struct {
	Items []CatalogItem `json:"items" yaml:"items"`
	Plots []CatalogPlot `json:"plots" yaml:"plots"`
}

type CatalogItem struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       int    `json:"price" yaml:"price"`
	ImageKey    string `json:"imageKey" yaml:"imageKey"`
	EffectValue int    `json:"effectValue" yaml:"effectValue"`
	Category    string `json:"category" yaml:"category"`
}

type CatalogPlot struct {
	Name         string `json:"name" yaml:"name"`
	X            int    `json:"x" yaml:"x"`
	Y            int    `json:"y" yaml:"y"`
	Price        int    `json:"price" yaml:"price"`
	BuildingType string `json:"buildingType" yaml:"buildingType"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Economy == nil {
		cfg.Economy = &EconomyConfig{}
	}
	if cfg.Economy.Timezone == "" {
		cfg.Economy.Timezone = defaultTimezone
	}
	if cfg.Economy.StartingCoins == 0 {
		cfg.Economy.StartingCoins = defaultStartingCoins
	}
	if cfg.Economy.CheckinCoins == 0 {
		cfg.Economy.CheckinCoins = defaultCheckinCoins
	}
	if cfg.Economy.CheckinExperience == 0 {
		cfg.Economy.CheckinExperience = defaultCheckinExperience
	}
	if cfg.Economy.NodeReward == 0 {
		cfg.Economy.NodeReward = defaultNodeReward
	}

	if cfg.Assistant == nil {
		cfg.Assistant = &AssistantConfig{}
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = defaultAssistantModel
	}
	if cfg.Assistant.Timeout <= 0 {
		cfg.Assistant.Timeout = defaultAssistantTimeout
	}

	if cfg.Media == nil {
		cfg.Media = &MediaConfig{}
	}
	if cfg.Media.MaxAvatarSize <= 0 {
		cfg.Media.MaxAvatarSize = defaultMaxAvatarSize
	}

	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
