package sign

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"opkit/internal/domain"
	"opkit/internal/layout"
	"opkit/internal/process"
	"opkit/internal/store"
)

// Signing identity prefixes prepended to the mac_sign setting.
const (
	DeveloperIDPrefix = "Developer ID Application: "
	AppStorePrefix    = "3rd Party Mac Developer Application: "
)

// MacIdentity returns the codesign identity for the mac_sign team name.
func MacIdentity(team string, appStore bool) string {
	if appStore {
		return AppStorePrefix + team
	}
	return DeveloperIDPrefix + team
}

// Codesign signs a macOS bundle.
type Codesign struct {
	Runner   domain.Runner
	Identity string

	// Entitlements is the project-relative entitlements file copied into
	// the bundle and passed to every codesign call; empty disables it.
	Entitlements string

	// Paths are extra bundle entries signed before the executable,
	// relative to the resources directory.
	Paths []string

	Log *slog.Logger
}

// SplitPaths parses the ';' separated mac_sign_paths setting.
func SplitPaths(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Commands lists the codesign invocations for plan in order: extra paths,
// the executable, then the bundle itself.
func (c *Codesign) Commands(plan layout.Plan) []domain.Command {
	targets := make([]string, 0, len(c.Paths)+2)
	for _, p := range c.Paths {
		targets = append(targets, filepath.Join(plan.Resources, p))
	}
	targets = append(targets, plan.Binary, plan.Bundle)

	cmds := make([]domain.Command, 0, len(targets))
	for _, target := range targets {
		args := []string{"--force", "--options", "runtime", "--timestamp"}
		if c.Entitlements != "" {
			args = append(args, "--entitlements", plan.Entitlements)
		}
		args = append(args, "--sign", c.Identity, target)
		cmds = append(cmds, domain.Command{Name: "codesign", Args: args})
	}
	return cmds
}

// Sign copies the entitlements into place and runs every codesign call,
// stopping at the first failure.
func (c *Codesign) Sign(ctx context.Context, plan layout.Plan) error {
	if c.Entitlements != "" {
		src := filepath.Join(plan.ProjectDir, c.Entitlements)
		if err := store.CopyFile(src, plan.Entitlements, 0o644); err != nil {
			return &domain.FilesystemError{Op: "copy", Path: src, Err: err}
		}
	}

	for _, cmd := range c.Commands(plan) {
		c.Log.Debug("codesign", "target", cmd.Args[len(cmd.Args)-1])
		if res, err := process.Check(ctx, c.Runner, "sign", cmd, ""); err != nil {
			c.Log.Error("unable to sign", "output", res.Output)
			return err
		}
	}
	c.Log.Info("finished code signing", "identity", c.Identity)
	return nil
}
