package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "phonebook.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Book.Path != "contacts.txt" {
		t.Errorf("default path = %q, want %q", cfg.Book.Path, "contacts.txt")
	}
	if cfg.Shell.Prompt != "Enter command: " {
		t.Errorf("default prompt = %q", cfg.Shell.Prompt)
	}
	if !cfg.Shell.Banner {
		t.Error("default banner = false, want true")
	}
	if cfg.Log.Level != LogOff {
		t.Errorf("default log level = %q, want %q", cfg.Log.Level, LogOff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), `
book:
  path: /tmp/book.txt
shell:
  prompt: "> "
  banner: false
log:
  level: debug
  file: /tmp/phonebook.log
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Book:  Book{Path: "/tmp/book.txt"},
		Shell: Shell{Prompt: "> ", Banner: false},
		Log:   Log{Level: "debug", File: "/tmp/phonebook.log"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/phonebook.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("Load(missing) = %+v, want defaults", *cfg)
	}
}

func TestLoad_EmptyAndCommentOnly(t *testing.T) {
	for name, body := range map[string]string{"empty": "", "comment only": "# nothing here\n"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, t.TempDir(), body))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *cfg != DefaultConfig() {
				t.Errorf("Load() = %+v, want defaults", *cfg)
			}
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "{{invalid yaml"))
	if err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "book:\n  pth: x\n"))
	if err == nil {
		t.Fatal("Load(unknown field) should return error")
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given a user config and a project config that overrides part of it
	user := writeFile(t, t.TempDir(), `
book:
  path: user.txt
shell:
  prompt: "user> "
`)
	project := writeFile(t, t.TempDir(), `
book:
  path: project.txt
`)

	// When both are loaded in order
	cfg, err := LoadLayered(user, project, "/nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then later layers win field by field
	if cfg.Book.Path != "project.txt" {
		t.Errorf("path = %q, want project.txt", cfg.Book.Path)
	}
	if cfg.Shell.Prompt != "user> " {
		t.Errorf("prompt = %q, want user> ", cfg.Shell.Prompt)
	}
	if !cfg.Shell.Banner {
		t.Error("banner should keep default true")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHONEBOOK_FILE", "/data/env.txt")
	t.Setenv("PHONEBOOK_LOG_LEVEL", "DEBUG")
	t.Setenv("PHONEBOOK_LOG_FILE", "/var/log/pb.log")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Book.Path != "/data/env.txt" {
		t.Errorf("path = %q", cfg.Book.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.File != "/var/log/pb.log" {
		t.Errorf("log file = %q", cfg.Log.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty path", mutate: func(c *Config) { c.Book.Path = "" }, wantErr: "book.path"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "info level ok", mutate: func(c *Config) { c.Log.Level = "info" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
