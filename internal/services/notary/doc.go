// Package notary submits a packaged macOS archive for notarization and
// polls the review service until the submission reaches a terminal state.
//
// The service is reached through `xcrun altool`. Its responses are plain
// text; only two markers are read from them (the request id after a
// submission and the status line of a query), and output lacking the
// expected marker is reported as domain.ErrUnparsableResponse rather than
// guessed at.
package notary
