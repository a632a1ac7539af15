package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/vglob/internal/config"
)

// runCLI runs the CLI with a config path that does not exist, so the
// defaults apply regardless of the working directory.
func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "missing.json")
	args = append([]string{"--config", missing}, args...)

	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCompileCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"literal", []string{"compile", "abc"}, "^(?:abc)$\n"},
		{"flags before pattern", []string{"compile", "--no-brace", "{a,b}"}, `^(?:\{a,b\})$` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", tt.args...)
			if code != 0 {
				t.Fatalf("exit %d, stderr %s", code, errOut)
			}
			if out != tt.want {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestCompileCommandJSON(t *testing.T) {
	code, out, _ := runCLI(t, "", "compile", "--json", "--no-case", "!a")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{`"glob": "!a"`, `"options": "nocase"`, `"ignoreCase": true`, `"negated": true`} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout %s missing %s", out, want)
		}
	}
}

func TestMissingPattern(t *testing.T) {
	for _, sub := range []string{"compile", "split", "match"} {
		t.Run(sub, func(t *testing.T) {
			code, _, errOut := runCLI(t, "", sub)
			if code != 1 {
				t.Errorf("exit %d, want 1", code)
			}
			if !strings.Contains(errOut, "E301") {
				t.Errorf("stderr %q should name E301", errOut)
			}
		})
	}
}

func TestSplitCommand(t *testing.T) {
	code, out, _ := runCLI(t, "", "split", "src/lib/**/*.go")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	want := "path:    src/lib\npattern: **/*.go\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}

	_, out, _ = runCLI(t, "", "split", "--json", "!docs/*.md")
	if strings.TrimSpace(out) != `{"path":"docs","pattern":"!*.md"}` {
		t.Errorf("json stdout = %q", out)
	}
}

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantOut  string
	}{
		{
			name:    "paths from args",
			args:    []string{"match", "*.go", "main.go", "README.md", "x.go"},
			wantOut: "main.go\nx.go\n",
		},
		{
			name:    "paths from stdin",
			stdin:   "a/b.md\n\nc.md\nd/e/f.md\n",
			args:    []string{"match", "**/*.md"},
			wantOut: "a/b.md\nc.md\nd/e/f.md\n",
		},
		{
			name:    "dot flag",
			args:    []string{"match", "--dot", "*", ".env"},
			wantOut: ".env\n",
		},
		{
			name:     "nothing matched",
			args:     []string{"match", "*.go", "README.md"},
			wantCode: 1,
			wantOut:  "",
		},
		{
			name:    "count",
			args:    []string{"match", "--count", "*", "a", "b", ".c"},
			wantOut: "2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.stdin, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit %d, want %d (stderr %s)", code, tt.wantCode, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
			if tt.wantCode == 1 && strings.Contains(errOut, "ERROR") {
				t.Errorf("no-match should not print an error, got %q", errOut)
			}
		})
	}
}

func TestConfigFileOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"options": {"dot": true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	code := run([]string{"match", "--config", path, "*", ".env"}, strings.NewReader(""), &out, &errOut)
	if code != 0 || out.String() != ".env\n" {
		t.Errorf("config dot: exit %d stdout %q stderr %q", code, out.String(), errOut.String())
	}

	// Flags override the file
	out.Reset()
	code = run([]string{"match", "--config", path, "--dot=false", "*", ".env"}, strings.NewReader(""), &out, &errOut)
	if code != 1 {
		t.Errorf("--dot=false should override the file: exit %d stdout %q", code, out.String())
	}
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"cacheSize": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	code := run([]string{"compile", "--config", path, "a"}, strings.NewReader(""), &out, &errOut)
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "E122") {
		t.Errorf("stderr %q should name E122", errOut.String())
	}
}

func TestVersionCommand(t *testing.T) {
	info := readBuildInfo()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
		contains []string
	}{
		{"short", []string{"version", "--short"}, 0, info.Version + "\n", nil},
		{"full", []string{"version"}, 0, "", []string{"vglob " + info.Version, "Go version:", "Engine:     " + engineModule, "Syntax:     brace, extglob"}},
		{"json", []string{"version", "--json"}, 0, "", []string{`"engine": "` + engineModule, `"syntax": [`}},
		{"short and json", []string{"version", "--short", "--json"}, 1, "", nil},
		{"extra argument", []string{"version", "now"}, 1, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, "", tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit = %d, want %d (output %q)", code, tt.wantCode, out)
			}
			if tt.want != "" && out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output %q lacks %q", out, s)
				}
			}
		})
	}
}

func TestVersionJSON(t *testing.T) {
	_, out, _ := runCLI(t, "", "version", "--json")

	var got buildInfo
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := readBuildInfo()
	if got.Version != want.Version || got.GoVersion != want.GoVersion || got.Platform != want.Platform {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Syntax) != len(syntaxFeatures) {
		t.Errorf("syntax = %v, want %v", got.Syntax, syntaxFeatures)
	}
}

func TestApplyAddr(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{":8080", "", 8080, false},
		{"0.0.0.0:9000", "0.0.0.0", 9000, false},
		{"localhost", "", 0, true},
		{"host:http", "", 0, true},
		{"host:70000", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			cfg := config.New()
			err := applyAddr(cfg, tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyAddr(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Server.Host != tt.wantHost || cfg.Server.Port != tt.wantPort {
				t.Errorf("host:port = %s:%d, want %s:%d", cfg.Server.Host, cfg.Server.Port, tt.wantHost, tt.wantPort)
			}
		})
	}
}
