package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultLocationTimeout    = 8 * time.Second

	// Fallback coordinates used whenever the viewer's position cannot be obtained.
	defaultFallbackLat = 34.0522
	defaultFallbackLng = -118.2437
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Location providers.
const (
	LocationBrowser = "browser"
	LocationStatic  = "static"
	LocationNone    = "none"
	LocationDenied  = "denied"
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
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Storage selects and configures the key-value backend behind the persistence store
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Latency configures the artificial delay of every mock service operation
	Latency *LatencyConfig `json:"latency" yaml:"latency"`

	// Location configures how the viewer's position is obtained
	Location *LocationConfig `json:"location" yaml:"location"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines the key-value backend configuration
type StorageConfig struct {
	// Driver is one of memory, sqlite, redis or postgres
	Driver string `json:"driver" yaml:"driver"`

	SQLite struct {
		Path string `json:"path" yaml:"path"`
	} `json:"sqlite" yaml:"sqlite"`

	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
		// Prefix is prepended to every key so several sessions can share one server
		Prefix string `json:"prefix" yaml:"prefix"`
	} `json:"redis" yaml:"redis"`

	Postgres struct {
		DSN string `json:"dsn" yaml:"dsn"`
	} `json:"postgres" yaml:"postgres"`
}

// LatencyConfig defines the simulated round-trip time of each service operation
type LatencyConfig struct {
	// Scale multiplies every duration below; 0 disables the delay entirely
	Scale float64 `json:"scale" yaml:"scale"`

	Login           time.Duration `json:"login" yaml:"login"`
	Signup          time.Duration `json:"signup" yaml:"signup"`
	Logout          time.Duration `json:"logout" yaml:"logout"`
	GetCurrentUser  time.Duration `json:"getCurrentUser" yaml:"getCurrentUser"`
	GetBooks        time.Duration `json:"getBooks" yaml:"getBooks"`
	CreateBook      time.Duration `json:"createBook" yaml:"createBook"`
	DeleteBook      time.Duration `json:"deleteBook" yaml:"deleteBook"`
	GetBooksByOwner time.Duration `json:"getBooksByOwner" yaml:"getBooksByOwner"`
}

// LocationConfig defines viewer location resolution
type LocationConfig struct {
	// Provider is one of browser, static, none or denied
	Provider string  `json:"provider" yaml:"provider"`
	Lat      float64 `json:"lat" yaml:"lat"`
	Lng      float64 `json:"lng" yaml:"lng"`

	// Timeout bounds how long the browser provider waits for the host
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	FallbackLat float64 `json:"fallbackLat" yaml:"fallbackLat"`
	FallbackLng float64 `json:"fallbackLng" yaml:"fallbackLng"`
}

// DefaultLatency returns the latencies of the original client.
func DefaultLatency() *LatencyConfig {
	return &LatencyConfig{
		Scale:           1,
		Login:           500 * time.Millisecond,
		Signup:          700 * time.Millisecond,
		Logout:          200 * time.Millisecond,
		GetCurrentUser:  100 * time.Millisecond,
		GetBooks:        600 * time.Millisecond,
		CreateBook:      400 * time.Millisecond,
		DeleteBook:      300 * time.Millisecond,
		GetBooksByOwner: 500 * time.Millisecond,
	}
}

// DefaultLocation returns a browser-driven location config with the standard fallback.
func DefaultLocation() *LocationConfig {
	return &LocationConfig{
		Provider:    LocationBrowser,
		Timeout:     defaultLocationTimeout,
		FallbackLat: defaultFallbackLat,
		FallbackLng: defaultFallbackLng,
	}
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

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Align each segment with existing YAML keys.
			// Example: LATENCY_GETBOOKS -> latency.getBooks (not latency.getbooks)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

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

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{Driver: StorageMemory}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageMemory
	}

	if cfg.Latency == nil {
		cfg.Latency = DefaultLatency()
	}

	if cfg.Location == nil {
		cfg.Location = DefaultLocation()
	}
	if cfg.Location.Provider == "" {
		cfg.Location.Provider = LocationBrowser
	}
	if cfg.Location.Timeout <= 0 {
		cfg.Location.Timeout = defaultLocationTimeout
	}
	if cfg.Location.FallbackLat == 0 && cfg.Location.FallbackLng == 0 {
		cfg.Location.FallbackLat = defaultFallbackLat
		cfg.Location.FallbackLng = defaultFallbackLng
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
