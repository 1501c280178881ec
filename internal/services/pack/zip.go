package pack

import (
	"context"
	"log/slog"

	"opkit/internal/domain"
	"opkit/internal/layout"
	"opkit/internal/process"
)

// Zip archives a macOS bundle with ditto, keeping resource forks and the
// bundle directory itself.
type Zip struct {
	Runner domain.Runner
	Log    *slog.Logger
}

func (z *Zip) Package(ctx context.Context, plan layout.Plan) (string, error) {
	cmd := domain.Command{Name: "ditto", Args: []string{"-c", "-k", "--sequesterRsrc", "--keepParent", plan.Bundle, plan.Artifact}}
	if res, err := process.Check(ctx, z.Runner, "package", cmd, ""); err != nil {
		z.Log.Error("failed to create zip for notarization", "output", res.Output)
		return "", err
	}
	z.Log.Info("created zip artifact", "archive", plan.Artifact)
	return plan.Artifact, nil
}
