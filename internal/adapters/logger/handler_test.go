package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgr/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info level", slog.LevelInfo, "information message", "handler_info"},
		{"warn level", slog.LevelWarn, "warning message", "handler_warn"},
		{"error level", slog.LevelError, "error message", "handler_error"},
		{"debug level filtered", slog.LevelDebug, "debug message", "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name string
		log  func(lg *slog.Logger)
		want string
	}{
		{
			"bound before group",
			func(lg *slog.Logger) {
				lg.With("source", "nuget.org").WithGroup("pkg").Info("fetched", "id", "Foo")
			},
			"fetched source=nuget.org pkg.id=Foo\n",
		},
		{
			"nested groups",
			func(lg *slog.Logger) {
				lg.WithGroup("a").WithGroup("b").Info("m", slog.Group("c", "k", 1))
			},
			"m a.b.c.k=1\n",
		},
		{
			"quoted values",
			func(lg *slog.Logger) {
				lg.Info("m", "path", "/my feeds/x", "empty", "", "plain", "v1")
			},
			"m path=\"/my feeds/x\" empty=\"\" plain=v1\n",
		},
		{
			"empty group dropped",
			func(lg *slog.Logger) {
				lg.Info("m", slog.Group("g"), "k", "v")
			},
			"m k=v\n",
		},
		{
			"debug glyph",
			func(lg *slog.Logger) {
				lg.Debug("m")
			},
			"● m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			tt.log(lg)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_SiblingsDoNotShareAttrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := slog.New(logger.NewPrettyHandler(buf, nil)).With("run", 1)
	base.Info("a", "x", 1)
	base.Info("b", "y", 2)

	assert.Equal(t, "a run=1 x=1\nb run=1 y=2\n", buf.String())
}

func TestPrettyHandler_LevelVarIsLive(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})

	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	level.Set(slog.LevelDebug)
	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
}
