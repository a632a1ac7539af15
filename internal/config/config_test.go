package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/vglob/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.CacheSize != DefaultCacheSize {
		t.Errorf("CacheSize = %d, want %d", cfg.CacheSize, DefaultCacheSize)
	}
	if time.Duration(cfg.MatchTimeout) != DefaultMatchTimeout {
		t.Errorf("MatchTimeout = %v, want %v", time.Duration(cfg.MatchTimeout), DefaultMatchTimeout)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if cfg.Options.String() != "default" {
		t.Errorf("Options = %s, want default", cfg.Options)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// A missing file yields the defaults
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load without a file: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "options": {"dot": true, "noExtGlob": true},
  "cacheSize": 0,
  "matchTimeout": "250ms",
  "server": {
    "host": "0.0.0.0",
    "port": 8080,
    "readTimeout": "3s"
  },
  "metrics": {"namespace": "globs"}
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if !cfg.Options.Dot || !cfg.Options.NoExtGlob || cfg.Options.NoBrace {
		t.Errorf("Options = %s, want dot,noextglob", cfg.Options)
	}
	if cfg.CacheSize != 0 {
		t.Errorf("CacheSize = %d, want 0 (explicitly disabled)", cfg.CacheSize)
	}
	if time.Duration(cfg.MatchTimeout) != 250*time.Millisecond {
		t.Errorf("MatchTimeout = %v, want 250ms", time.Duration(cfg.MatchTimeout))
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 3*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 3s", time.Duration(cfg.Server.ReadTimeout))
	}
	if cfg.Server.MaxPaths != DefaultMaxPaths {
		t.Errorf("Server.MaxPaths = %d, want default %d", cfg.Server.MaxPaths, DefaultMaxPaths)
	}
	if cfg.Metrics.Namespace != "globs" {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, "globs")
	}
	if cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing.TracerName = %q, want default", cfg.Tracing.TracerName)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode string
	}{
		{"invalid json", `{"cacheSize": `, "E121"},
		{"wrong type", `{"cacheSize": "many"}`, "E121"},
		{"bad duration", `{"matchTimeout": "soon"}`, "E121"},
		{"negative cache", `{"cacheSize": -1}`, "E122"},
		{"port too large", `{"server": {"port": 70000}}`, "E122"},
		{"negative max paths", `{"server": {"maxPaths": -5}}`, "E122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			var ge *errors.GlobError
			if !stderrors.As(err, &ge) {
				t.Fatalf("error %T is not a GlobError", err)
			}
			if ge.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s (%v)", ge.Code, tt.wantCode, err)
			}
		})
	}
}

func TestLoadUnreadable(t *testing.T) {
	// A directory where the file should be cannot be read as a file
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !stderrors.Is(err, errors.New("E120")) {
		t.Errorf("Load() error = %v, want E120", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"cache disabled", func(c *Config) { c.CacheSize = 0 }, false},
		{"negative cache", func(c *Config) { c.CacheSize = -1 }, true},
		{"negative timeout", func(c *Config) { c.MatchTimeout = Duration(-time.Second) }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port max", func(c *Config) { c.Server.Port = 65535 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 65536 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"1m30s"`), &d); err != nil {
		t.Fatal(err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", time.Duration(d))
	}

	if err := json.Unmarshal([]byte(`1000000`), &d); err != nil {
		t.Fatal(err)
	}
	if time.Duration(d) != time.Millisecond {
		t.Errorf("Duration = %v, want 1ms", time.Duration(d))
	}

	data, err := json.Marshal(Duration(2 * time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2s"` {
		t.Errorf("Marshal = %s, want \"2s\"", data)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindRoot() = %q, want %q", got, want)
	}

	if !Exists(root) {
		t.Error("Exists(root) should be true")
	}
	if Exists(nested) {
		t.Error("Exists(nested) should be false")
	}
}

func TestLoadFromWorkingDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{"server": {"port": 9999}}`), 0644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadFromWorkingDir()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if !strings.HasSuffix(cfg.Path(), ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}
