package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"opkit/cmd/opkit/commands"
	"opkit/internal/domain"
)

const settingsFile = `name: foo
title: Foo
executable: foo
output: dist
version: 1.0
revision: 2
arch: amd64
linux_cmd: ./build.sh
mac_cmd: ./build.sh
win_cmd: build.bat
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("OPKIT_CONFIG", "")
	var stdout, stderr bytes.Buffer
	err := commands.Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestExecute_NoArgsPrintsUsage(t *testing.T) {
	out, _, err := run(t)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "opkit <project-dir>") || !strings.Contains(out, "--package") {
		t.Fatalf("usage:\n%s", out)
	}
	if domain.ExitCode(err) != 0 {
		t.Fatalf("exit code = %d", domain.ExitCode(err))
	}
}

func TestExecute_LegacyHelp(t *testing.T) {
	out, _, err := run(t, "-h")
	if err != nil || !strings.Contains(out, "Usage:") {
		t.Fatalf("help: %v\n%s", err, out)
	}
}

func TestExecute_MissingSettingsIsConfigError(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "-p", "--platform", "linux")
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if domain.ExitCode(err) != 1 {
		t.Fatalf("exit code = %d", domain.ExitCode(err))
	}
}

func TestExecute_UnknownPlatform(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "--platform", "plan9")
	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want ConfigError, got %v", err)
	}
}

func TestLayout_PrintsPlanAsYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.config"), []byte(settingsFile), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "layout", dir, "--platform", "linux", "-xd")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	var plan struct {
		Platform   string `yaml:"platform"`
		BundleName string `yaml:"bundle_name"`
		Artifact   string `yaml:"artifact"`
	}
	if err := yaml.Unmarshal([]byte(out), &plan); err != nil {
		t.Fatalf("yaml: %v\n%s", err, out)
	}
	if plan.Platform != "linux" || plan.BundleName != "foo_1.0-2_amd64" {
		t.Fatalf("plan = %+v", plan)
	}
	if !strings.HasSuffix(plan.Artifact, "foo_1.0-2_amd64.deb") {
		t.Fatalf("artifact = %q", plan.Artifact)
	}
	if _, err := os.Stat(filepath.Join(dir, "dist")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("layout touched disk: %v", err)
	}
}

func TestLayout_DebugNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.config"), []byte(settingsFile), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "layout", dir, "--platform", "darwin")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(out, "bundle_name: foo-dev.app") {
		t.Fatalf("plan:\n%s", out)
	}
}
