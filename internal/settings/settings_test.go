package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opkit/internal/domain"
	"opkit/internal/settings"
)

const minimal = `# app settings
name: app
title: App
executable: app
output: build
version: 1.0
arch: amd64
revision: 2
linux_cmd: ./build.sh
mac_cmd: ./build-mac.sh
win_cmd: build.cmd
`

func parse(t *testing.T, text string, p domain.Platform) *settings.Settings {
	t.Helper()
	s, err := settings.Parse(strings.NewReader(text), p)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParse_SplitsOnFirstColon(t *testing.T) {
	s := parse(t, "url: https://example.com:8080/x\n  spaced  :  value with  spaces  \n", domain.Linux)

	if got := s.Get("url"); got != "https://example.com:8080/x" {
		t.Fatalf("url = %q", got)
	}
	if got := s.Get("spaced"); got != "value with  spaces" {
		t.Fatalf("spaced = %q", got)
	}
}

func TestParse_IgnoresCommentsAndBlankLines(t *testing.T) {
	s := parse(t, "\n# name: nope\n   # indented: comment\n\nname: yes\nno colon here\n", domain.Linux)

	entries := s.Entries()
	if len(entries) != 1 || entries[0] != (settings.Entry{Key: "name", Value: "yes"}) {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestParse_SelectsPlatformCommand(t *testing.T) {
	cases := map[domain.Platform]string{
		domain.Linux:   "./build.sh",
		domain.Darwin:  "./build-mac.sh",
		domain.Windows: "build.cmd",
	}
	for p, want := range cases {
		s := parse(t, minimal, p)
		if got := s.Get(settings.CommandKey); got != want {
			t.Fatalf("%s: _cmd = %q, want %q", p, got, want)
		}
	}
}

func TestValidate_OK(t *testing.T) {
	if err := parse(t, minimal, domain.Linux).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_MissingRequiredKey(t *testing.T) {
	for _, key := range settings.RequiredKeys {
		var lines []string
		for _, l := range strings.Split(minimal, "\n") {
			if !strings.HasPrefix(l, key+":") {
				lines = append(lines, l)
			}
		}
		err := parse(t, strings.Join(lines, "\n"), domain.Linux).Validate()

		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("missing %s: want ConfigError, got %v", key, err)
		}
		if cfgErr.MissingKey != key {
			t.Fatalf("missing %s: MissingKey = %q", key, cfgErr.MissingKey)
		}
	}
}

func TestValidate_MissingPlatformCommand(t *testing.T) {
	text := strings.Replace(minimal, "linux_cmd: ./build.sh\n", "", 1)
	err := parse(t, text, domain.Linux).Validate()

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.MissingKey != "linux_cmd" {
		t.Fatalf("want missing linux_cmd, got %v", err)
	}
}

func TestValidate_FileCommandKeyIsNotPlatformCommand(t *testing.T) {
	text := strings.Replace(minimal, "linux_cmd: ./build.sh\n", "_cmd: make\n", 1)
	s := parse(t, text, domain.Linux)

	if _, ok := s.Lookup(settings.CommandKey); ok {
		t.Fatalf("_cmd taken from the file: %q", s.Get(settings.CommandKey))
	}
	var cfgErr *domain.ConfigError
	if err := s.Validate(); !errors.As(err, &cfgErr) || cfgErr.MissingKey != "linux_cmd" {
		t.Fatalf("want missing linux_cmd, got %v", err)
	}
}

func TestValidate_EmptyPlatformCommand(t *testing.T) {
	text := strings.Replace(minimal, "linux_cmd: ./build.sh\n", "linux_cmd:   \n", 1)
	err := parse(t, text, domain.Linux).Validate()

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.MissingKey != "linux_cmd" {
		t.Fatalf("want missing linux_cmd, got %v", err)
	}
}

func TestValidate_SuggestsCloseKey(t *testing.T) {
	text := strings.Replace(minimal, "executable:", "executabel:", 1)
	err := parse(t, text, domain.Linux).Validate()

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if cfgErr.Hint != "executabel" {
		t.Fatalf("Hint = %q", cfgErr.Hint)
	}
	if !strings.Contains(err.Error(), "did you mean 'executabel'") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestApplyDebug_OncePerRun(t *testing.T) {
	s := parse(t, "name: app\ntitle: App\nexecutable: app\n", domain.Linux)

	if err := s.ApplyDebug(); err != nil {
		t.Fatalf("ApplyDebug: %v", err)
	}
	id := s.Identity()
	if id.Name != "app-dev" || id.Title != "App-dev" || id.Executable != "app-dev" {
		t.Fatalf("identity = %+v", id)
	}
	if err := s.ApplyDebug(); !errors.Is(err, settings.ErrDebugApplied) {
		t.Fatalf("second ApplyDebug: want ErrDebugApplied, got %v", err)
	}
	if got := s.Get("name"); got != "app-dev" {
		t.Fatalf("name mutated twice: %q", got)
	}
}

func TestPayload_StripsCommentsAndKeepsOriginalValues(t *testing.T) {
	s := parse(t, "# secret comment\nname: my app\n\nversion: 1.0\n", domain.Linux)
	if err := s.ApplyDebug(); err != nil {
		t.Fatal(err)
	}

	got := s.Payload()
	if want := "name%3A%20my%20app%0Aversion%3A%201.0"; got != want {
		t.Fatalf("Payload = %q, want %q", got, want)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"abc-_.!~*'()": "abc-_.!~*'()",
		"a b":          "a%20b",
		"\"quoted\"":   "%22quoted%22",
		"é":            "%C3%A9",
		"a/b?c=d&e":    "a%2Fb%3Fc%3Dd%26e",
	}
	for in, want := range cases {
		if got := settings.EncodeURIComponent(in); got != want {
			t.Fatalf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := settings.Load(filepath.Join(t.TempDir(), settings.FileName), domain.Linux)

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want wrapped ErrNotExist, got %v", err)
	}
}
