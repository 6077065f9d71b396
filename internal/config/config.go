// Package config provides reading and writing of stash configuration.
// Supports both global (~/.stash/config.yaml) and local (.stash/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.stash/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .stash/config.yaml
	ScopeLocal
)

// Server holds HTTP server options.
type Server struct {
	Addr string `yaml:"addr,omitempty"`
}

// Auth holds session token verification options.
type Auth struct {
	Secret string `yaml:"secret,omitempty"`
	Cookie string `yaml:"cookie,omitempty"`
}

// Search holds fuzzy retrieval tuning.
type Search struct {
	MaxEdits         *int `yaml:"max_edits,omitempty"`
	MaxExpansions    *int `yaml:"max_expansions,omitempty"`
	CompleteMaxEdits *int `yaml:"complete_max_edits,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxTitle    *int   `yaml:"max_title,omitempty"`
	MaxContent  *int64 `yaml:"max_content,omitempty"`
	MaxFileSize *int64 `yaml:"max_file_size,omitempty"`
}

// Storage selects and configures the attachment backend.
type Storage struct {
	Backend   string `yaml:"backend,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PublicURL string `yaml:"public_url,omitempty"`
}

// Metadata controls bookmark page metadata fetching.
type Metadata struct {
	Enabled   *bool `yaml:"enabled,omitempty"`
	TimeoutMS *int  `yaml:"timeout_ms,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultAddr             = ":8080"
	DefaultCookie           = "jwt"
	DefaultMaxEdits         = 2
	DefaultMaxExpansions    = 50
	DefaultCompleteMaxEdits = 1
	DefaultMaxTitle         = 200
	DefaultMaxContent       = 1024 * 1024      // 1 MiB
	DefaultMaxFileSize      = 10 * 1024 * 1024 // 10 MiB
	DefaultBackend          = BackendLocal
	DefaultTimeoutMS        = 5000
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Validation bounds for configuration values.
const (
	MinMaxEdits      = 0
	MaxMaxEdits      = 2
	MinMaxExpansions = 1
	MaxMaxExpansions = 1000
	MinMaxTitle      = 1
	MaxMaxTitle      = 10000
	MinMaxContent    = 1
	MaxMaxContent    = 100 * 1024 * 1024 // 100 MiB
	MinMaxFileSize   = 1
	MaxMaxFileSize   = 1024 * 1024 * 1024 // 1 GiB
	MinTimeoutMS     = 100
	MaxTimeoutMS     = 60000
)

// Config contains configuration for stash.
type Config struct {
	Owner    string   `yaml:"owner,omitempty"`
	Server   Server   `yaml:"server,omitempty"`
	Auth     Auth     `yaml:"auth,omitempty"`
	Search   Search   `yaml:"search,omitempty"`
	Limits   Limits   `yaml:"limits,omitempty"`
	Storage  Storage  `yaml:"storage,omitempty"`
	Metadata Metadata `yaml:"metadata,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if err := bounded("search.max_edits", c.Search.MaxEdits, MinMaxEdits, MaxMaxEdits); err != nil {
		return err
	}
	if err := bounded("search.complete_max_edits", c.Search.CompleteMaxEdits, MinMaxEdits, MaxMaxEdits); err != nil {
		return err
	}
	if err := bounded("search.max_expansions", c.Search.MaxExpansions, MinMaxExpansions, MaxMaxExpansions); err != nil {
		return err
	}
	if err := bounded("limits.max_title", c.Limits.MaxTitle, MinMaxTitle, MaxMaxTitle); err != nil {
		return err
	}
	if err := bounded("limits.max_content", c.Limits.MaxContent, MinMaxContent, MaxMaxContent); err != nil {
		return err
	}
	if err := bounded("limits.max_file_size", c.Limits.MaxFileSize, MinMaxFileSize, MaxMaxFileSize); err != nil {
		return err
	}
	if err := bounded("metadata.timeout_ms", c.Metadata.TimeoutMS, MinTimeoutMS, MaxTimeoutMS); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case "", BackendLocal:
	case BackendS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("%w: storage.bucket is required for the s3 backend", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q",
			ErrInvalidValue, BackendLocal, BackendS3, c.Storage.Backend)
	}
	return nil
}

func bounded[T int | int64](key string, v *T, lo, hi T) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidValue, key, lo, hi, *v)
	}
	return nil
}

// Addr returns the HTTP listen address (defaults to :8080).
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// Cookie returns the name of the session cookie (defaults to jwt).
func (c *Config) Cookie() string {
	if c.Auth.Cookie == "" {
		return DefaultCookie
	}
	return c.Auth.Cookie
}

// MaxEdits returns the edit distance allowed for ranked search terms.
func (c *Config) MaxEdits() int {
	if c.Search.MaxEdits == nil {
		return DefaultMaxEdits
	}
	return *c.Search.MaxEdits
}

// MaxExpansions returns how many fuzzy variants are considered per term.
func (c *Config) MaxExpansions() int {
	if c.Search.MaxExpansions == nil {
		return DefaultMaxExpansions
	}
	return *c.Search.MaxExpansions
}

// CompleteMaxEdits returns the edit distance allowed for autocomplete prefixes.
func (c *Config) CompleteMaxEdits() int {
	if c.Search.CompleteMaxEdits == nil {
		return DefaultCompleteMaxEdits
	}
	return *c.Search.CompleteMaxEdits
}

// MaxTitle returns the maximum title length in characters (defaults to 200).
func (c *Config) MaxTitle() int {
	if c.Limits.MaxTitle == nil {
		return DefaultMaxTitle
	}
	return *c.Limits.MaxTitle
}

// MaxContent returns the maximum note content size in bytes (defaults to 1 MiB).
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// MaxFileSize returns the maximum attachment size in bytes (defaults to 10 MiB).
func (c *Config) MaxFileSize() int64 {
	if c.Limits.MaxFileSize == nil {
		return DefaultMaxFileSize
	}
	return *c.Limits.MaxFileSize
}

// Backend returns the attachment storage backend (defaults to local).
func (c *Config) Backend() string {
	if c.Storage.Backend == "" {
		return DefaultBackend
	}
	return c.Storage.Backend
}

// MetadataEnabled reports whether bookmark metadata is fetched (defaults to true).
func (c *Config) MetadataEnabled() bool {
	if c.Metadata.Enabled == nil {
		return true
	}
	return *c.Metadata.Enabled
}

// MetadataTimeout returns the metadata fetch timeout (defaults to 5s).
func (c *Config) MetadataTimeout() time.Duration {
	ms := DefaultTimeoutMS
	if c.Metadata.TimeoutMS != nil {
		ms = *c.Metadata.TimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".stash", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.stash/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stash", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to path. The file may hold the auth
// secret, so it is written 0600.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
