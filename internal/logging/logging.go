// Package logging builds the slog loggers used by the CLI.
//
// The default "pretty" format prints one bullet line per record followed by
// the time elapsed since the previous record:
//
//	• package prepared bundle=dist/foo.app +12ms
//
// The "json" format emits slog's JSON records for machine consumption.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Options configure New.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // pretty or json
	Now    func() time.Time
}

// New returns a logger writing to w. Every record carries the run attribute
// identifying this invocation.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)

	var h slog.Handler
	if opts.Format == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = NewHandler(w, level, opts.Now)
	}
	return slog.New(h).With("run", uuid.NewString())
}

// ParseLevel maps a level name onto slog levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler is the pretty, human oriented slog handler.
type Handler struct {
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
	shared *shared
}

type shared struct {
	mu    sync.Mutex
	w     io.Writer
	now   func() time.Time
	last  time.Time
	delta lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	key   lipgloss.Style
}

// NewHandler returns a Handler writing to w. A nil now uses time.Now.
func NewHandler(w io.Writer, level slog.Leveler, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	r := lipgloss.NewRenderer(w)
	return &Handler{
		level: level,
		shared: &shared{
			w:     w,
			now:   now,
			last:  now(),
			delta: r.NewStyle().Foreground(lipgloss.Color("2")),
			warn:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
			err:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
			key:   r.NewStyle().Faint(true),
		},
	}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	s := h.shared

	var b strings.Builder
	b.WriteString("• ")
	switch {
	case rec.Level >= slog.LevelError:
		b.WriteString(s.err.Render("error!") + " ")
	case rec.Level >= slog.LevelWarn:
		b.WriteString(s.warn.Render("warning!") + " ")
	}
	b.WriteString(rec.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	elapsed := now.Sub(s.last).Milliseconds()
	s.last = now
	b.WriteString(" " + s.delta.Render("+"+strconv.FormatInt(elapsed, 10)+"ms") + "\n")

	_, err := io.WriteString(s.w, b.String())
	return err
}

func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) || a.Key == "run" {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, key, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s%s", h.shared.key.Render(key+"="), formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a = slog.Group(h.group, a)
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	next.group = name
	return &next
}

var _ slog.Handler = (*Handler)(nil)
