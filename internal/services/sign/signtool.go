package sign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"opkit/internal/crypto"
	"opkit/internal/domain"
	"opkit/internal/process"
)

const (
	// TimestampURL is the RFC 3161 server used for Windows signatures.
	TimestampURL = "http://timestamp.digicert.com"
	// DefaultCertificate is used when win_pfx is not set.
	DefaultCertificate = "cert.pfx"
)

// ErrNoSigntool is returned when SIGNTOOL is not configured.
var ErrNoSigntool = errors.New("missing env var SIGNTOOL, should be the path to the Windows SDK signtool.exe binary")

// Signtool signs Windows packages.
type Signtool struct {
	Runner      domain.Runner
	Path        string // signtool.exe
	Certificate string // .pfx, relative paths resolve against the project
	Password    string
	Log         *slog.Logger
}

// Command returns the signtool invocation for artifact.
func (s *Signtool) Command(projectDir, artifact string) domain.Command {
	return domain.Command{Name: s.Path, Args: []string{
		"sign", "/debug",
		"/tr", TimestampURL,
		"/td", "sha256",
		"/fd", "sha256",
		"/f", s.certificate(projectDir),
		"/p", s.Password,
		artifact,
	}}
}

// Preflight checks that signing can be attempted: the tool is configured
// and the password opens the certificate. Certificates the decoder cannot
// fully read only produce a warning.
func (s *Signtool) Preflight(projectDir string) error {
	if s.Path == "" {
		return &domain.ConfigError{Err: ErrNoSigntool}
	}
	cert := s.certificate(projectDir)
	res, err := crypto.CheckCertificate(cert, s.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrCertificatePassword) {
			return &domain.ConfigError{Err: fmt.Errorf("CSC_KEY_PASSWORD: %w", err)}
		}
		return &domain.FilesystemError{Op: "read", Path: cert, Err: err}
	}
	if !res.Verified {
		s.Log.Warn("could not verify signing certificate", "cert", cert, "reason", res.Reason)
	}
	return nil
}

// Sign runs signtool on artifact.
func (s *Signtool) Sign(ctx context.Context, projectDir, artifact string) error {
	display := fmt.Sprintf("%s sign %s", s.Path, artifact)
	if res, err := process.Check(ctx, s.Runner, "sign", s.Command(projectDir, artifact), display); err != nil {
		s.Log.Error("unable to sign", "package", artifact, "output", res.Output)
		return err
	}
	s.Log.Info("finished code signing", "package", artifact)
	return nil
}

func (s *Signtool) certificate(projectDir string) string {
	cert := s.Certificate
	if cert == "" {
		cert = DefaultCertificate
	}
	if !filepath.IsAbs(cert) {
		cert = filepath.Join(projectDir, cert)
	}
	return cert
}
