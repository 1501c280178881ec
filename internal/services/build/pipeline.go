package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"opkit/internal/config"
	"opkit/internal/crypto"
	"opkit/internal/domain"
	"opkit/internal/layout"
	"opkit/internal/process"
	"opkit/internal/services/notary"
	"opkit/internal/services/pack"
	"opkit/internal/services/sign"
	"opkit/internal/settings"
)

// Notarizer drives one review submission to a terminal state.
type Notarizer interface {
	Run(ctx context.Context, artifact, bundleID string) (domain.Submission, error)
}

// Packager produces the distributable for a materialized bundle.
type Packager interface {
	Package(ctx context.Context, plan layout.Plan) (string, error)
}

// Request is one pipeline invocation.
type Request struct {
	ProjectDir string
	Flags      domain.Flags
}

// Report describes a finished run.
type Report struct {
	Plan       layout.Plan
	Compiled   bool
	Artifact   string
	Digest     string
	Submission *domain.Submission
}

// Pipeline runs the build stages for one platform.
type Pipeline struct {
	platform domain.Platform
	runner   domain.Runner
	env      config.Env
	notary   Notarizer
	log      *slog.Logger
}

// New returns a Pipeline for platform p. A nil notarizer is replaced by
// the altool poller authenticated with the APPLE_ID credentials.
func New(p domain.Platform, r domain.Runner, env config.Env, n Notarizer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if n == nil {
		n = notary.NewPoller(notary.NewAltool(r, env.AppleID, env.AppleIDPassword), log)
	}
	return &Pipeline{platform: p, runner: r, env: env, notary: n, log: log}
}

// run carries the state shared between stages.
type run struct {
	req      Request
	settings *settings.Settings
	plan     layout.Plan
	codesign *sign.Codesign
	signtool *sign.Signtool
	report   Report
}

// Run executes every stage enabled by req.Flags. The returned error is
// typed so the caller can derive an exit code from it.
func (p *Pipeline) Run(ctx context.Context, req Request) (Report, error) {
	r := &run{req: req}

	stages := []struct {
		name string
		fn   func(context.Context, *run) error
	}{
		{"validate", p.validate},
		{"clean", p.clean},
		{"layout", p.materialize},
		{"user-build", p.userBuild},
		{"compile", p.compile},
		{"package", p.packageAndSign},
		{"notarize", p.notarize},
		{"run", p.launch},
	}
	for _, st := range stages {
		start := time.Now()
		if err := st.fn(ctx, r); err != nil {
			p.log.Error("stage failed", "stage", st.name, "err", err)
			return r.report, err
		}
		p.log.Debug("stage done", "stage", st.name, "took", time.Since(start))
	}
	return r.report, nil
}

func (p *Pipeline) validate(_ context.Context, r *run) error {
	if !p.platform.Supported() {
		return &domain.ConfigError{Err: fmt.Errorf("unsupported platform %q", p.platform)}
	}
	if p.env.CXXDefaulted {
		p.log.Warn("$CXX env var not set, assuming defaults", "cxx", p.env.CXX)
	}

	path := filepath.Join(r.req.ProjectDir, settings.FileName)
	s, err := settings.Load(path, p.platform)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := p.preflight(s, r); err != nil {
		return err
	}
	if r.req.Flags.Debug {
		if err := s.ApplyDebug(); err != nil {
			return err
		}
	}

	plan, err := layout.Resolve(s, p.platform, r.req.ProjectDir)
	if err != nil {
		return err
	}
	if layout.Within(plan.Root, plan.ProjectDir) {
		return &domain.ConfigError{Path: path, Err: fmt.Errorf("output %s would contain the project directory", plan.Root)}
	}
	r.settings, r.plan, r.report.Plan = s, plan, plan
	p.log.Info("preparing build", "platform", p.platform, "bundle", plan.Bundle, "debug", s.Debug())

	if r.signtool != nil {
		return r.signtool.Preflight(plan.ProjectDir)
	}
	return nil
}

// preflight checks the settings the enabled flags depend on.
func (p *Pipeline) preflight(s *settings.Settings, r *run) error {
	f := r.req.Flags
	require := func(key string) error {
		if s.Get(key) == "" {
			return &domain.ConfigError{MissingKey: key}
		}
		return nil
	}

	switch p.platform {
	case domain.Darwin:
		if f.Sign {
			if err := require("mac_sign"); err != nil {
				return err
			}
			r.codesign = &sign.Codesign{
				Runner:   p.runner,
				Identity: sign.MacIdentity(s.Get("mac_sign"), f.AppStore),
				Paths:    sign.SplitPaths(s.Get("mac_sign_paths")),
				Log:      p.log,
			}
			if f.Entitlements {
				if err := require("mac_entitlements"); err != nil {
					return err
				}
				r.codesign.Entitlements = s.Get("mac_entitlements")
			}
		}
		if f.Notarize {
			if !f.Package {
				return &domain.ConfigError{Err: errors.New("notarization needs a packaged archive, add --package")}
			}
			if err := require("bundle_identifier"); err != nil {
				return err
			}
		}
	case domain.Windows:
		if f.Sign {
			r.signtool = &sign.Signtool{
				Runner:      p.runner,
				Path:        p.env.Signtool,
				Certificate: s.Get("win_pfx"),
				Password:    p.env.CSCKeyPassword,
				Log:         p.log,
			}
		}
	}
	return nil
}

func (p *Pipeline) clean(_ context.Context, r *run) error {
	if r.req.Flags.UserBuildOnly {
		return nil
	}
	if err := os.RemoveAll(r.plan.Root); err != nil {
		return &domain.FilesystemError{Op: "clean", Path: r.plan.Root, Err: err}
	}
	return nil
}

func (p *Pipeline) materialize(_ context.Context, r *run) error {
	if err := layout.Materialize(r.plan, r.plan.RenderVars(r.settings.Vars())); err != nil {
		return err
	}
	p.log.Info("package prepared")
	return nil
}

func (p *Pipeline) userBuild(ctx context.Context, r *run) error {
	line := r.settings.Get(settings.CommandKey) + " " + quote(r.plan.BuildResources) + " --debug=" + debugValue(r.settings.Debug())
	p.log.Info("running user build", "cmd", line)

	res, err := process.Check(ctx, p.runner, "user-build", process.Shell(line, r.plan.ProjectDir), "")
	if err != nil {
		p.log.Error("unable to run user build command", "output", res.Output)
		return err
	}
	if out := strings.TrimSpace(res.Output); out != "" {
		p.log.Info(out)
	}
	p.log.Info("ran user build command")
	return nil
}

func (p *Pipeline) compile(ctx context.Context, r *run) error {
	if r.req.Flags.UserBuildOnly {
		if fi, err := os.Stat(r.plan.Binary); err == nil && !fi.IsDir() {
			p.log.Info("binary exists, skipping compile", "binary", r.plan.Binary)
			return nil
		}
	}

	userFlags := r.settings.Get("flags")
	if r.settings.Debug() {
		userFlags = r.settings.Get("debug_flags")
	}
	line := compileLine(p.platform, p.env, userFlags, r.plan.Binary, r.settings.Debug(), r.settings.Payload())
	p.log.Debug("compile", "cmd", line)

	res, err := process.Check(ctx, p.runner, "compile", process.Shell(line, r.plan.ProjectDir), p.env.CXX)
	if err != nil {
		p.log.Error("unable to build", "output", res.Output)
		return err
	}
	r.report.Compiled = true
	p.log.Info("compiled native binary", "binary", r.plan.Binary)
	return nil
}

func (p *Pipeline) packageAndSign(ctx context.Context, r *run) error {
	f := r.req.Flags
	switch p.platform {
	case domain.Linux:
		if f.Package {
			return p.pack(ctx, r, &pack.Deb{Runner: p.runner, Log: p.log})
		}
	case domain.Darwin:
		if r.codesign != nil {
			if err := r.codesign.Sign(ctx, r.plan); err != nil {
				return err
			}
		}
		if f.Package {
			return p.pack(ctx, r, &pack.Zip{Runner: p.runner, Log: p.log})
		}
	case domain.Windows:
		if f.Package {
			if err := p.pack(ctx, r, &pack.Appx{Runner: p.runner, Tool: p.env.Makeappx, Log: p.log}); err != nil {
				return err
			}
		}
		if r.signtool != nil {
			return r.signtool.Sign(ctx, r.plan.ProjectDir, r.plan.Artifact)
		}
	}
	return nil
}

func (p *Pipeline) pack(ctx context.Context, r *run, pk Packager) error {
	artifact, err := pk.Package(ctx, r.plan)
	if err != nil {
		return err
	}
	r.report.Artifact = artifact

	digest, err := crypto.FileDigest(artifact)
	if err != nil {
		p.log.Warn("could not digest artifact", "artifact", artifact, "err", err)
		return nil
	}
	r.report.Digest = digest
	p.log.Info("artifact ready", "artifact", artifact, "sha256", digest)
	return nil
}

func (p *Pipeline) notarize(ctx context.Context, r *run) error {
	if p.platform != domain.Darwin || !r.req.Flags.Notarize {
		return nil
	}
	sub, err := p.notary.Run(ctx, r.report.Artifact, r.settings.Get("bundle_identifier"))
	r.report.Submission = &sub
	if err != nil {
		return err
	}
	p.log.Info("finished notarization", "state", sub.State, "attempts", sub.Attempts)
	return nil
}

func (p *Pipeline) launch(ctx context.Context, r *run) error {
	if !r.req.Flags.Run {
		return nil
	}
	res, err := p.runner.Run(ctx, domain.Command{Name: r.plan.Binary, Attach: true})
	if err != nil {
		p.log.Warn("unable to run binary", "binary", r.plan.Binary, "err", err)
		return nil
	}
	p.log.Debug("application exited", "code", res.ExitCode)
	return nil
}
