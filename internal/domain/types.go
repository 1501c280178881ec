package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies one of the supported bundle conventions.
type Platform string

const (
	Darwin  Platform = "darwin"
	Linux   Platform = "linux"
	Windows Platform = "windows"
)

// CurrentPlatform maps runtime.GOOS onto a Platform.
func CurrentPlatform() Platform { return Platform(runtime.GOOS) }

// ParsePlatform accepts a GOOS-style name plus the short aliases used in
// settings keys (mac, win).
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "darwin", "mac", "macos":
		return Darwin, nil
	case "linux":
		return Linux, nil
	case "windows", "win":
		return Windows, nil
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// Supported reports whether p has a bundle layout.
func (p Platform) Supported() bool {
	switch p {
	case Darwin, Linux, Windows:
		return true
	}
	return false
}

// CommandKey is the settings key holding the user build command for p.
func (p Platform) CommandKey() string {
	switch p {
	case Darwin:
		return "mac_cmd"
	case Windows:
		return "win_cmd"
	default:
		return "linux_cmd"
	}
}

// ExeSuffix is appended to executable names on p.
func (p Platform) ExeSuffix() string {
	if p == Windows {
		return ".exe"
	}
	return ""
}

// Flags are the CLI toggles gating each pipeline stage.
type Flags struct {
	UserBuildOnly bool // -o
	Package       bool // -p
	Sign          bool // -c
	Entitlements  bool // -me
	Notarize      bool // -mn
	Run           bool // -r
	AppStore      bool // -s / -b
	Debug         bool // cleared by -xd
}

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means the caller's
	Env  []string // extra KEY=VALUE pairs appended to the environment

	// Attach connects the process to the terminal instead of capturing
	// output.
	Attach bool
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is what a finished process reports back.
type Result struct {
	ExitCode int
	Output   string // combined stdout and stderr
}

// ReviewState classifies a notarization submission.
type ReviewState string

const (
	ReviewSubmitted  ReviewState = "submitted"
	ReviewInProgress ReviewState = "in-progress"
	ReviewAccepted   ReviewState = "accepted"
	ReviewRejected   ReviewState = "rejected"
	ReviewTimedOut   ReviewState = "timed-out"

	// ReviewInconclusive is a terminal, non-fatal exit on a status that is
	// neither in progress, invalid nor success.
	ReviewInconclusive ReviewState = "inconclusive"
)

// Terminal reports whether no further polling happens in s.
func (s ReviewState) Terminal() bool {
	switch s {
	case ReviewAccepted, ReviewRejected, ReviewTimedOut, ReviewInconclusive:
		return true
	}
	return false
}

// Submission is the single in-flight review request of a pipeline run.
type Submission struct {
	RequestID  string
	Attempts   int
	State      ReviewState
	LastStatus string
	LastOutput string
}
