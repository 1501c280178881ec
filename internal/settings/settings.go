package settings

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"

	"opkit/internal/domain"
)

const (
	// FileName is the settings file expected at the project root.
	FileName = "settings.config"

	// CommandKey is the synthetic key holding the platform build command.
	CommandKey = "_cmd"

	// DebugSuffix is appended to identity fields in debug mode.
	DebugSuffix = "-dev"

	maxLine = 1 << 20
)

// RequiredKeys must all be present for a settings set to validate.
var RequiredKeys = []string{"name", "title", "executable", "output", "version", "arch"}

// ErrDebugApplied is returned by a second ApplyDebug in one run.
var ErrDebugApplied = errors.New("debug mode already applied")

// Entry is one key/value pair in file order.
type Entry struct {
	Key   string
	Value string
}

// Settings is an ordered string mapping.
type Settings struct {
	entries  []Entry
	index    map[string]int
	source   []string // non-comment lines, for Payload
	platform domain.Platform
	debug    bool
}

// Identity is the typed view over the fixed fields every platform uses.
type Identity struct {
	Name       string
	Title      string
	Executable string
	Output     string
	Version    string
	Revision   string
	Arch       string
	Command    string
}

// Load reads and parses path for platform p.
func Load(path string, p domain.Platform) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	s, err := Parse(bytes.NewReader(b), p)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	return s, nil
}

// Parse reads key/value lines from r. The build command matching p is
// copied into CommandKey; a CommandKey line in the file is ignored.
func Parse(r io.Reader, p domain.Platform) (*Settings, error) {
	s := &Settings{index: map[string]int{}, platform: p}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || key == CommandKey {
			continue
		}
		s.source = append(s.source, line)
		s.Set(key, strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if cmd, ok := s.Lookup(p.CommandKey()); ok {
		s.Set(CommandKey, cmd)
	}
	return s, nil
}

// Get returns the value for key, or "" when absent.
func (s *Settings) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value for key and whether it is present.
func (s *Settings) Lookup(key string) (string, bool) {
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.entries[i].Value, true
}

// Set stores value under key. An existing key keeps its position.
func (s *Settings) Set(key, value string) {
	if i, ok := s.index[key]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

// Entries returns a copy of all pairs in file order.
func (s *Settings) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Vars returns the settings as a flat map for template rendering.
func (s *Settings) Vars() map[string]string {
	out := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		out[e.Key] = e.Value
	}
	return out
}

// Platform is the platform the settings were parsed for.
func (s *Settings) Platform() domain.Platform { return s.platform }

// Identity returns the typed view of the fixed fields.
func (s *Settings) Identity() Identity {
	return Identity{
		Name:       s.Get("name"),
		Title:      s.Get("title"),
		Executable: s.Get("executable"),
		Output:     s.Get("output"),
		Version:    s.Get("version"),
		Revision:   s.Get("revision"),
		Arch:       s.Get("arch"),
		Command:    s.Get(CommandKey),
	}
}

// Validate checks the build command for the current platform and every
// required key. An empty build command counts as missing. It performs no I/O.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Get(CommandKey)) == "" {
		return &domain.ConfigError{MissingKey: s.platform.CommandKey(), Hint: s.closest(s.platform.CommandKey())}
	}
	for _, key := range RequiredKeys {
		if _, ok := s.Lookup(key); !ok {
			return &domain.ConfigError{MissingKey: key, Hint: s.closest(key)}
		}
	}
	return nil
}

// ApplyDebug appends DebugSuffix to name, title and executable. It may run
// once per Settings.
func (s *Settings) ApplyDebug() error {
	if s.debug {
		return ErrDebugApplied
	}
	s.debug = true
	for _, key := range []string{"name", "title", "executable"} {
		s.Set(key, s.Get(key)+DebugSuffix)
	}
	return nil
}

// Debug reports whether ApplyDebug has run.
func (s *Settings) Debug() bool { return s.debug }

// closest finds a present key within edit distance 2 of want.
func (s *Settings) closest(want string) string {
	best, bestDist := "", 3
	for _, e := range s.entries {
		if e.Key == CommandKey {
			continue
		}
		d := levenshtein.ComputeDistance(want, e.Key)
		if d < bestDist && d < len(want) {
			best, bestDist = e.Key, d
		}
	}
	return best
}
