package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/pkgr/internal/ui/output"
	"go.trai.ch/pkgr/internal/ui/style"
)

// levelStyle is the glyph and color used for records at or above a level.
type levelStyle struct {
	min   slog.Level
	glyph string
	color termenv.Color
}

// levelStyles is ordered from the most to the least severe level.
var levelStyles = []levelStyle{
	{slog.LevelError, style.Cross, termenv.RGBColor(string(style.Red))},
	{slog.LevelWarn, style.Warning, termenv.RGBColor(string(style.Yellow))},
	{slog.LevelInfo, "", termenv.RGBColor(string(style.Slate))},
}

// debugStyle applies to everything below slog.LevelInfo.
var debugStyle = levelStyle{slog.LevelDebug, style.Dot, termenv.RGBColor(string(style.Iris))}

func styleFor(level slog.Level) levelStyle {
	for _, s := range levelStyles {
		if level >= s.min {
			return s
		}
	}
	return debugStyle
}

// PrettyHandler is a slog.Handler that writes one colored line per record:
// an optional level glyph, the message, then key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	// prefix is the dotted group path applied to attributes added later.
	prefix string
	// bound holds attributes from WithAttrs, already rendered.
	bound []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// A nil opts.Level defaults to slog.LevelInfo. A *slog.LevelVar stays live.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	s := styleFor(r.Level)

	var b strings.Builder
	if s.glyph != "" {
		b.WriteString(s.glyph)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	// Clip so record attributes never write into the shared bound slice.
	pairs := slices.Clip(h.bound)
	r.Attrs(func(attr slog.Attr) bool {
		pairs = appendAttr(pairs, h.prefix, attr)
		return true
	})
	for _, p := range pairs {
		b.WriteByte(' ')
		b.WriteString(p)
	}

	line := h.out.String(b.String()).Foreground(s.color)
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes bound under the
// current group path.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	bound := make([]string, len(h.bound), len(h.bound)+len(attrs))
	copy(bound, h.bound)
	for _, attr := range attrs {
		bound = appendAttr(bound, h.prefix, attr)
	}

	clone := *h
	clone.bound = bound
	return &clone
}

// WithGroup returns a new Handler that qualifies subsequent attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = joinKey(h.prefix, name)
	return &clone
}

// appendAttr renders attr as key=value, flattening groups into dotted keys.
func appendAttr(dst []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}

	if attr.Value.Kind() == slog.KindGroup {
		group := attr.Value.Group()
		if len(group) == 0 {
			return dst
		}
		// An unnamed group is inlined into the parent.
		if attr.Key != "" {
			prefix = joinKey(prefix, attr.Key)
		}
		for _, member := range group {
			dst = appendAttr(dst, prefix, member)
		}
		return dst
	}

	return append(dst, joinKey(prefix, attr.Key)+"="+quoteValue(attr.Value.String()))
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// quoteValue quotes values that would otherwise be ambiguous on one line.
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\r\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
