package notary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"opkit/internal/domain"
)

const (
	// DefaultInterval is the wait before every status query.
	DefaultInterval = 6144 * time.Millisecond
	// DefaultMaxAttempts bounds the number of status queries.
	DefaultMaxAttempts = 1024
)

// submitCmd is how submissions appear in logs and errors; the real command
// line carries credentials.
const submitCmd = "xcrun altool --notarize-app"

// Poller drives one submission to a terminal state.
type Poller struct {
	Tool        domain.ReviewTool
	Sleep       func(ctx context.Context, d time.Duration) error
	Interval    time.Duration
	MaxAttempts int
	Log         *slog.Logger
}

// NewPoller returns a Poller with the default interval and attempt limit.
func NewPoller(tool domain.ReviewTool, log *slog.Logger) *Poller {
	return &Poller{
		Tool:        tool,
		Sleep:       Sleep,
		Interval:    DefaultInterval,
		MaxAttempts: DefaultMaxAttempts,
		Log:         log,
	}
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run submits artifact and polls until the review finishes. Accepted and
// Inconclusive return a nil error; Rejected, TimedOut and unparsable
// responses return an error alongside the final submission.
func (p *Poller) Run(ctx context.Context, artifact, bundleID string) (domain.Submission, error) {
	log := p.logger()

	res, err := p.Tool.Submit(ctx, artifact, bundleID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("submit %s: %w", artifact, err)
	}
	if res.ExitCode != 0 {
		log.Error("unable to notarize", "code", res.ExitCode, "output", res.Output)
		return domain.Submission{}, &domain.SubprocessError{Stage: "notarize", Cmd: submitCmd, Code: res.ExitCode, Output: res.Output}
	}

	sub := domain.Submission{State: domain.ReviewSubmitted, LastOutput: res.Output}
	id, ok := ParseRequestID(res.Output)
	if !ok {
		log.Info("no pending notarization request, nothing to poll")
		sub.State = domain.ReviewAccepted
		return sub, nil
	}
	sub.RequestID = id
	log.Info("polling for notarization", "request", id)

	for {
		sub.Attempts++
		if sub.Attempts > p.MaxAttempts {
			log.Error("review service did not finish the notarization", "attempts", sub.Attempts-1)
			sub.State = domain.ReviewTimedOut
			return sub, domain.ErrReviewTimedOut
		}

		if err := p.Sleep(ctx, p.Interval); err != nil {
			return sub, err
		}

		res, err := p.Tool.Status(ctx, id)
		if err != nil {
			return sub, fmt.Errorf("query %s: %w", id, err)
		}
		sub.LastOutput = res.Output

		status, err := ParseStatus(res.Output)
		if err != nil {
			log.Error("unexpected status response", "code", res.ExitCode, "output", res.Output)
			return sub, err
		}
		sub.LastStatus = status
		sub.State = Classify(status)

		switch sub.State {
		case domain.ReviewInProgress:
			log.Debug("checking for updates", "attempt", sub.Attempts)
			continue
		case domain.ReviewRejected:
			log.Error("notarization rejected", "status", status, "output", res.Output)
			p.history(ctx, log)
			return sub, domain.ErrReviewRejected
		case domain.ReviewAccepted:
			log.Info("successfully notarized", "request", id)
		default:
			log.Warn("notarization finished without success", "status", status)
		}
		return sub, nil
	}
}

func (p *Poller) history(ctx context.Context, log *slog.Logger) {
	res, err := p.Tool.History(ctx)
	switch {
	case err != nil:
		log.Warn("unable to get notarization history", "err", err)
	case res.ExitCode != 0:
		log.Warn("unable to get notarization history", "code", res.ExitCode, "output", res.Output)
	default:
		log.Info("notarization history", "output", res.Output)
	}
}

func (p *Poller) logger() *slog.Logger {
	if p.Log == nil {
		return slog.Default()
	}
	return p.Log
}
