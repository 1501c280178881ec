package layout

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"opkit/internal/domain"
	"opkit/internal/settings"
	"opkit/internal/tmpl"
)

const defaultRevision = "1"

// Template names used in Manifest.Template.
const (
	TemplateInfoPlist     = "info-plist"
	TemplateDesktopEntry  = "desktop-entry"
	TemplateDebianControl = "debian-control"
	TemplateAppxManifest  = "appx-manifest"
)

var templates = map[string]string{
	TemplateInfoPlist:     tmpl.InfoPlist,
	TemplateDesktopEntry:  tmpl.DesktopEntry,
	TemplateDebianControl: tmpl.DebianControl,
	TemplateAppxManifest:  tmpl.AppxManifest,
}

// Manifest is one generated file.
type Manifest struct {
	Path     string `yaml:"path"`
	Template string `yaml:"template"`
}

// Copy is a file copied into the bundle from the project.
type Copy struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// Plan is the resolved layout of one build.
type Plan struct {
	Platform   domain.Platform `yaml:"platform"`
	ProjectDir string          `yaml:"project"`
	Root       string          `yaml:"output"`
	BundleName string          `yaml:"bundle_name"`
	Bundle     string          `yaml:"bundle"`
	BinDir     string          `yaml:"bin_dir"`
	Binary     string          `yaml:"binary"`
	Resources  string          `yaml:"resources"`

	// BuildResources is Resources relative to ProjectDir, as handed to the
	// user build command.
	BuildResources string `yaml:"build_resources"`

	Dirs         []string   `yaml:"dirs"`
	Manifests    []Manifest `yaml:"manifests"`
	Icon         *Copy      `yaml:"icon,omitempty"`
	Entitlements string     `yaml:"entitlements,omitempty"`

	// SymlinkDir receives a link named after the executable pointing at
	// SymlinkTarget, the install-time path of the binary.
	SymlinkDir    string `yaml:"symlink_dir,omitempty"`
	SymlinkTarget string `yaml:"symlink_target,omitempty"`

	// Artifact is the distributable produced by the package stage.
	Artifact string `yaml:"artifact"`

	// Derived holds platform-specific template variables.
	Derived map[string]string `yaml:"derived,omitempty"`
}

// RenderVars overlays the derived variables on the settings map.
func (p Plan) RenderVars(base map[string]string) map[string]string {
	return tmpl.Merge(base, p.Derived)
}

// Resolve computes the plan for platform p. The settings must already be
// validated. Resolve touches no files.
func Resolve(s *settings.Settings, p domain.Platform, projectDir string) (Plan, error) {
	if !p.Supported() {
		return Plan{}, &domain.ConfigError{Err: fmt.Errorf("unsupported platform %q", p)}
	}
	project, err := filepath.Abs(projectDir)
	if err != nil {
		return Plan{}, &domain.FilesystemError{Op: "resolve", Path: projectDir, Err: err}
	}

	id := s.Identity()
	derived := map[string]string{}
	if id.Revision == "" {
		id.Revision = defaultRevision
		derived["revision"] = defaultRevision
	}
	for key, v := range map[string]string{
		"name":       id.Name,
		"executable": id.Executable,
		"version":    id.Version,
		"revision":   id.Revision,
		"arch":       id.Arch,
	} {
		if err := component(key, v); err != nil {
			return Plan{}, err
		}
	}

	root := id.Output
	if !filepath.IsAbs(root) {
		root = filepath.Join(project, root)
	}
	root = filepath.Clean(root)

	binaryName := id.Executable + p.ExeSuffix()
	derived["binary_name"] = binaryName

	plan := Plan{Platform: p, ProjectDir: project, Root: root, Derived: derived}

	switch p {
	case domain.Darwin:
		plan.BundleName = id.Name + ".app"
		plan.Bundle = filepath.Join(root, plan.BundleName)
		contents := filepath.Join(plan.Bundle, "Contents")
		plan.BinDir = filepath.Join(contents, "MacOS")
		plan.Resources = filepath.Join(contents, "Resources")
		plan.Dirs = []string{plan.BinDir, plan.Resources}
		plan.Manifests = []Manifest{
			{Path: filepath.Join(contents, "Info.plist"), Template: TemplateInfoPlist},
		}
		plan.Entitlements = filepath.Join(plan.Resources, "entitlements.plist")
		plan.Artifact = filepath.Join(root, id.Executable+".zip")

	case domain.Linux:
		// Debian package naming convention.
		plan.BundleName = id.Executable + "_" + id.Version + "-" + id.Revision + "_" + id.Arch
		plan.Bundle = filepath.Join(root, plan.BundleName)
		opt := filepath.Join(plan.Bundle, "opt", id.Name)
		control := filepath.Join(plan.Bundle, "DEBIAN")
		apps := filepath.Join(plan.Bundle, "usr", "share", "applications")
		icons := filepath.Join(plan.Bundle, "usr", "share", "icons", "hicolor", "256x256", "apps")

		plan.BinDir = opt
		plan.Resources = opt
		plan.Dirs = []string{icons, opt, apps, control}
		plan.Manifests = []Manifest{
			{Path: filepath.Join(apps, id.Name+".desktop"), Template: TemplateDesktopEntry},
			{Path: filepath.Join(control, "control"), Template: TemplateDebianControl},
		}
		if icon := s.Get("linux_icon"); icon != "" {
			plan.Icon = &Copy{
				Src: filepath.Join(project, icon),
				Dst: filepath.Join(icons, id.Executable+".png"),
			}
		}

		installed := path.Join("/opt", id.Name, id.Executable)
		plan.SymlinkDir = filepath.Join(plan.Bundle, "usr", "local", "bin")
		plan.SymlinkTarget = installed
		derived["linux_executable_path"] = installed
		derived["linux_icon_path"] = path.Join("/usr/share/icons/hicolor/256x256/apps", id.Executable+".png")
		plan.Artifact = filepath.Join(root, plan.BundleName+".deb")

	case domain.Windows:
		plan.BundleName = id.Executable + "-" + id.Version
		plan.Bundle = filepath.Join(root, plan.BundleName)
		plan.BinDir = plan.Bundle
		plan.Resources = plan.Bundle
		plan.Dirs = []string{plan.Bundle}
		plan.Manifests = []Manifest{
			{Path: filepath.Join(plan.Bundle, "AppxManifest.xml"), Template: TemplateAppxManifest},
		}
		derived["win_version"] = appxVersion(id.Version, id.Revision)
		plan.Artifact = plan.Bundle + ".appx"
	}

	plan.Binary = filepath.Join(plan.BinDir, binaryName)
	if rel, err := filepath.Rel(project, plan.Resources); err == nil {
		plan.BuildResources = rel
	} else {
		plan.BuildResources = plan.Resources
	}

	if err := plan.contained(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// contained checks that every output path lies under Root.
func (p Plan) contained() error {
	paths := []string{p.Bundle, p.BinDir, p.Binary, p.Resources, p.Artifact}
	paths = append(paths, p.Dirs...)
	for _, m := range p.Manifests {
		paths = append(paths, m.Path)
	}
	if p.Icon != nil {
		paths = append(paths, p.Icon.Dst)
	}
	if p.Entitlements != "" {
		paths = append(paths, p.Entitlements)
	}
	if p.SymlinkDir != "" {
		paths = append(paths, p.SymlinkDir)
	}
	for _, f := range paths {
		if !Within(p.Root, f) {
			return &domain.ConfigError{Err: fmt.Errorf("layout path %s escapes output root %s", f, p.Root)}
		}
	}
	return nil
}

// Within reports whether path is root or lies below it.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// component rejects values that would not form a single path element.
func component(key, v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) {
		return &domain.ConfigError{Err: fmt.Errorf("'%s' value %q is not usable as a file name", key, v)}
	}
	return nil
}

// appxVersion builds the four-part numeric version Windows packages need
// from version and revision, e.g. 1.2 and 3 become 1.2.0.3.
func appxVersion(version, revision string) string {
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(append(parts, revision), ".")
}
