package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigFile = "CONFIG_FILE"
	EnvBaseURL    = "SAP_BASEURL"
	EnvPort       = "PORT"
	EnvLogLevel   = "LOG_LEVEL"

	PolicyEngineNone   = "none"
	PolicyEngineCasbin = "casbin"
	PolicyEngineOPA    = "opa"
)

var (
	ErrMissingBaseURL     = errors.New("backend base-url is required")
	ErrUnknownPolicy      = errors.New("unknown policy engine")
	ErrMissingPolicyFiles = errors.New("policy engine requires policy files")
)

type ServerConfig struct {
	ReadTimeout     time.Duration `toml:"read-timeout"`
	WriteTimeout    time.Duration `toml:"write-timeout"`
	IdleTimeout     time.Duration `toml:"idle-timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown-timeout"`
	// MaxRequestBody caps the bytes read from a CreatePurchaseOrder body.
	MaxRequestBody int64 `toml:"max-request-body"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxRequestBody:  1 << 20,
	}
}

type BackendConfig struct {
	BaseURL                 string        `toml:"base-url"`
	Timeout                 time.Duration `toml:"timeout"`
	NormalizeMutationStatus bool          `toml:"normalize-mutation-status"`
}

// DefaultsConfig holds the identifiers used when a caller omits num.
type DefaultsConfig struct {
	PurchaseOrder string `toml:"purchase-order"`
	SalesOrder    string `toml:"sales-order"`
}

type PolicyConfig struct {
	Engine string `toml:"engine"`

	// casbin
	Model  string `toml:"model"`
	Policy string `toml:"policy"`

	// opa, Policy holds the rego module
	Query string              `toml:"query"`
	Roles map[string][]string `toml:"roles"`
}

type AuthConfig struct {
	// BearerPublicKey is a PEM file. When set, Bearer tokens must be signed with its key.
	BearerPublicKey string `toml:"bearer-public-key"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Config struct {
	ListenPort     string          `toml:"listen-port"`
	LogLevel       string          `toml:"log-level"`
	ServerConfig   *ServerConfig   `toml:"server"`
	BackendConfig  *BackendConfig  `toml:"backend"`
	DefaultsConfig *DefaultsConfig `toml:"defaults"`
	AuthConfig     *AuthConfig     `toml:"auth"`
	PolicyConfig   *PolicyConfig   `toml:"policy"`
	MetricsConfig  *MetricsConfig  `toml:"metrics"`
}

func NewConfig() *Config {
	return &Config{
		ListenPort:   "8080",
		LogLevel:     "info",
		ServerConfig: NewServerConfig(),
		BackendConfig: &BackendConfig{
			NormalizeMutationStatus: true,
		},
		DefaultsConfig: &DefaultsConfig{
			PurchaseOrder: "4500000001",
			SalesOrder:    "2",
		},
		AuthConfig: &AuthConfig{},
		PolicyConfig: &PolicyConfig{
			Engine: PolicyEngineNone,
			Query:  "data.sapapi.authz.allow",
		},
		MetricsConfig: &MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at path and the environment.
// When path is empty the CONFIG_FILE variable is consulted.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BackendConfig.BaseURL = v
	}

	if v, ok := lookup(EnvPort); ok && v != "" {
		c.ListenPort = v
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate reports configuration the service cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BackendConfig.BaseURL) == "" {
		return ErrMissingBaseURL
	}

	switch c.PolicyConfig.Engine {
	case "", PolicyEngineNone:
	case PolicyEngineCasbin:
		if c.PolicyConfig.Model == "" || c.PolicyConfig.Policy == "" {
			return fmt.Errorf("%w: %s needs model and policy", ErrMissingPolicyFiles, PolicyEngineCasbin)
		}
	case PolicyEngineOPA:
		if c.PolicyConfig.Policy == "" {
			return fmt.Errorf("%w: %s needs policy", ErrMissingPolicyFiles, PolicyEngineOPA)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, c.PolicyConfig.Engine)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log-level %q: %w", c.LogLevel, err)
	}

	return level, nil
}
