package layout

import (
	"fmt"
	"os"

	"opkit/internal/domain"
	"opkit/internal/store"
	"opkit/internal/tmpl"
)

// Materialize creates the plan's directories, renders its manifests with
// vars and copies the icon. It stops at the first filesystem error and
// never removes anything.
func Materialize(p Plan, vars map[string]string) error {
	for _, dir := range p.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.FilesystemError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	for _, m := range p.Manifests {
		text, ok := templates[m.Template]
		if !ok {
			return &domain.FilesystemError{Op: "render", Path: m.Path, Err: fmt.Errorf("unknown template %q", m.Template)}
		}
		if err := store.WriteFile(m.Path, []byte(tmpl.Render(text, vars)), 0o644); err != nil {
			return &domain.FilesystemError{Op: "write", Path: m.Path, Err: err}
		}
	}

	if p.Icon != nil {
		exists, err := store.Exists(p.Icon.Dst)
		if err != nil {
			return &domain.FilesystemError{Op: "stat", Path: p.Icon.Dst, Err: err}
		}
		if !exists {
			if err := store.CopyFile(p.Icon.Src, p.Icon.Dst, 0o644); err != nil {
				return &domain.FilesystemError{Op: "copy", Path: p.Icon.Src, Err: err}
			}
		}
	}
	return nil
}
