package logger

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgr/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"

	// EnvLogFormat selects the log format. "json" emits slog JSON records.
	EnvLogFormat = "PKGR_LOG_FORMAT"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return FromEnv(os.Getenv), nil
		},
	})
}

// FromEnv creates a Logger configured from the environment.
func FromEnv(getenv func(string) string) ports.Logger {
	l := New()
	if strings.EqualFold(strings.TrimSpace(getenv(EnvLogFormat)), "json") {
		if jl, ok := l.(*Logger); ok {
			jl.SetJSON(true)
		}
	}
	return l
}
