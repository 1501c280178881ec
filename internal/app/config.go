package app

import (
	"io"

	"opkit/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Platform  domain.Platform // target conventions, e.g. domain.CurrentPlatform()
	LogLevel  string          // debug, info, warn, error
	LogFormat string          // pretty or json
	Out       io.Writer       // log destination; defaults to os.Stderr
}
