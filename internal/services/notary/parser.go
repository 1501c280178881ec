package notary

import (
	"fmt"
	"regexp"
	"strings"

	"opkit/internal/domain"
)

var (
	requestIDPattern = regexp.MustCompile(`(?m)^RequestUUID = (.+?)\r?$`)
	statusPattern    = regexp.MustCompile(`(?mi)^ *Status: (.+?)\r?$`)
)

// ParseRequestID extracts the request id from a submission response. ok is
// false when the response carries none, which means the service has
// nothing pending for this artifact.
func ParseRequestID(output string) (id string, ok bool) {
	m := requestIDPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	id = strings.TrimSpace(m[1])
	return id, id != ""
}

// ParseStatus extracts the status text from a query response.
func ParseStatus(output string) (string, error) {
	m := statusPattern.FindStringSubmatch(output)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", fmt.Errorf("status query: %w", domain.ErrUnparsableResponse)
	}
	return strings.TrimSpace(m[1]), nil
}

// Classify maps a status text onto a review state.
func Classify(status string) domain.ReviewState {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "in progress"):
		return domain.ReviewInProgress
	case strings.Contains(s, "invalid"):
		return domain.ReviewRejected
	case strings.Contains(s, "success"):
		return domain.ReviewAccepted
	default:
		return domain.ReviewInconclusive
	}
}
