package notary

import (
	"context"

	"opkit/internal/domain"
)

// Altool is the review tool backed by `xcrun altool`.
type Altool struct {
	Runner   domain.Runner
	Username string
	Password string
}

// NewAltool returns an Altool authenticating as username.
func NewAltool(r domain.Runner, username, password string) *Altool {
	return &Altool{Runner: r, Username: username, Password: password}
}

func (a *Altool) Submit(ctx context.Context, artifact, bundleID string) (domain.Result, error) {
	return a.Runner.Run(ctx, domain.Command{Name: "xcrun", Args: []string{
		"altool", "--notarize-app",
		"--username", a.Username,
		"--password", a.Password,
		"--primary-bundle-id", bundleID,
		"--file", artifact,
	}})
}

func (a *Altool) Status(ctx context.Context, requestID string) (domain.Result, error) {
	return a.Runner.Run(ctx, domain.Command{Name: "xcrun", Args: []string{
		"altool", "--notarization-info", requestID,
		"-u", a.Username,
		"-p", a.Password,
	}})
}

func (a *Altool) History(ctx context.Context) (domain.Result, error) {
	return a.Runner.Run(ctx, domain.Command{Name: "xcrun", Args: []string{
		"altool", "--notarization-history", "0",
		"-u", a.Username,
		"-p", a.Password,
	}})
}

var _ domain.ReviewTool = (*Altool)(nil)
