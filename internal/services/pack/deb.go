package pack

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"opkit/internal/domain"
	"opkit/internal/layout"
	"opkit/internal/process"
)

// Deb builds a Debian package with dpkg-deb.
type Deb struct {
	Runner domain.Runner
	Log    *slog.Logger
}

// Package links the executable onto the PATH inside the bundle and builds
// the .deb into the output root.
func (d *Deb) Package(ctx context.Context, plan layout.Plan) (string, error) {
	if err := os.MkdirAll(plan.SymlinkDir, 0o755); err != nil {
		return "", &domain.FilesystemError{Op: "mkdir", Path: plan.SymlinkDir, Err: err}
	}
	link := filepath.Join(plan.SymlinkDir, filepath.Base(plan.Binary))
	if err := os.Remove(link); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", &domain.FilesystemError{Op: "symlink", Path: link, Err: err}
	}
	if err := os.Symlink(plan.SymlinkTarget, link); err != nil {
		return "", &domain.FilesystemError{Op: "symlink", Path: link, Err: err}
	}

	cmd := domain.Command{Name: "dpkg-deb", Args: []string{"--build", "--root-owner-group", plan.Bundle, plan.Root}}
	if res, err := process.Check(ctx, d.Runner, "package", cmd, ""); err != nil {
		d.Log.Error("failed to create deb package", "output", res.Output)
		return "", err
	}
	d.Log.Info("created deb package", "package", plan.Artifact)
	return plan.Artifact, nil
}
