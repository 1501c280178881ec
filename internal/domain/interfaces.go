package domain

import "context"

// Runner starts external processes and blocks until they exit. A non-zero
// exit is reported through Result.ExitCode, not as an error; the error is
// reserved for processes that could not be started at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ReviewTool talks to the remote notarization service.
type ReviewTool interface {
	// Submit uploads the archived artifact and returns the raw response.
	Submit(ctx context.Context, artifact, bundleID string) (Result, error)
	// Status queries one submission by request id.
	Status(ctx context.Context, requestID string) (Result, error)
	// History lists recent submissions for diagnostics.
	History(ctx context.Context) (Result, error)
}
