package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/vglob/internal/errors"
	"github.com/vango-dev/vglob/internal/scanner"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vglob.json"

	// DefaultCacheSize is the number of compiled patterns kept in memory.
	DefaultCacheSize = 512

	// DefaultMatchTimeout bounds a single match.
	DefaultMatchTimeout = 100 * time.Millisecond

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPort is the default server port.
	DefaultPort = 7411

	// DefaultReadTimeout bounds reading a request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultMaxPaths caps the paths one match request may carry.
	DefaultMaxPaths = 10000

	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "vglob"

	// DefaultTracerName names the tracer compile spans come from.
	DefaultTracerName = "github.com/vango-dev/vglob"
)

// Duration is a time.Duration written as a string ("250ms", "10s") in JSON.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Config represents the complete vglob.json configuration.
type Config struct {
	// Options are the compile options used when a request or command does
	// not set its own.
	Options scanner.Options `json:"options"`

	// CacheSize is the number of compiled patterns to memoize. 0 disables
	// the cache.
	CacheSize int `json:"cacheSize"`

	// MatchTimeout bounds a single match.
	MatchTimeout Duration `json:"matchTimeout"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout bounds reading a request, headers included.
	ReadTimeout Duration `json:"readTimeout,omitempty"`

	// MaxPaths caps the number of paths in one match request.
	MaxPaths int `json:"maxPaths,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName names the tracer compile spans come from.
	TracerName string `json:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		CacheSize:    DefaultCacheSize,
		MatchTimeout: Duration(DefaultMatchTimeout),
		Server: ServerConfig{
			Host:        DefaultHost,
			Port:        DefaultPort,
			ReadTimeout: Duration(DefaultReadTimeout),
			MaxPaths:    DefaultMaxPaths,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vglob.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path. A missing
// file is not an error: the defaults are returned.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.New("E120").
			WithDetail("Failed to read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E121").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON and durations are strings like \"250ms\"")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields. CacheSize is
// left alone since 0 is meaningful.
func (c *Config) applyDefaults() {
	if c.MatchTimeout == 0 {
		c.MatchTimeout = Duration(DefaultMatchTimeout)
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(DefaultReadTimeout)
	}
	if c.Server.MaxPaths == 0 {
		c.Server.MaxPaths = DefaultMaxPaths
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CacheSize < 0 {
		return errors.New("E122").
			WithDetail("cacheSize must not be negative, got " + strconv.Itoa(c.CacheSize)).
			WithSuggestion("Use 0 to disable the cache")
	}
	if c.MatchTimeout < 0 {
		return errors.New("E122").
			WithDetail("matchTimeout must not be negative")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if c.Server.MaxPaths < 0 {
		return errors.New("E122").
			WithDetail("server.maxPaths must not be negative")
	}
	return nil
}

// Address returns the address string for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindRoot walks up from startDir to the nearest directory holding
// vglob.json. It returns "" when there is none.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest vglob.json above the working
// directory, or the defaults when there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindRoot(wd)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return New(), nil
	}
	return Load(root)
}
