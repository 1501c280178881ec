package pack

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"opkit/internal/domain"
	"opkit/internal/layout"
	"opkit/internal/process"
	"opkit/internal/store"
)

const manifestName = "AppxManifest.xml"

// Appx builds a Windows package with makeappx from a mapping file.
type Appx struct {
	Runner domain.Runner
	Tool   string // makeappx.exe
	Log    *slog.Logger
}

// Package writes the mapping next to the bundle and packs it.
func (a *Appx) Package(ctx context.Context, plan layout.Plan) (string, error) {
	mapping, err := Mapping(plan.Bundle)
	if err != nil {
		return "", &domain.FilesystemError{Op: "walk", Path: plan.Bundle, Err: err}
	}
	mapPath := plan.Bundle + ".map"
	if err := store.WriteFile(mapPath, mapping, 0o644); err != nil {
		return "", &domain.FilesystemError{Op: "write", Path: mapPath, Err: err}
	}

	cmd := domain.Command{Name: a.Tool, Args: []string{"pack", "/o", "/f", mapPath, "/p", plan.Artifact}}
	if res, err := process.Check(ctx, a.Runner, "package", cmd, ""); err != nil {
		a.Log.Error("unable to save package", "output", res.Output)
		return "", err
	}
	a.Log.Info("package saved", "package", plan.Artifact)
	return plan.Artifact, nil
}

// Mapping renders the makeappx mapping for every file under bundle. The
// manifest is listed last; entries named like it elsewhere in the tree
// are left out.
func Mapping(bundle string) ([]byte, error) {
	var files []string
	err := filepath.WalkDir(bundle, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), manifestName) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var b bytes.Buffer
	b.WriteString("[Files]\n")
	for _, f := range append(files, filepath.Join(bundle, manifestName)) {
		rel, err := filepath.Rel(bundle, f)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "\"%s\" \"%s\"\n", f, strings.ReplaceAll(rel, "/", `\`))
	}
	return b.Bytes(), nil
}
