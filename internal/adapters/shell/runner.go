// Package shell runs external programs and captures their output.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes argv in dir. Standard error is attached to the returned error as metadata.
func (r *Runner) Run(ctx context.Context, dir string, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, zerr.With(domain.ErrCommandFailed, "reason", "empty command")
	}

	executable, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", argv[0])
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, executable, argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running " + strings.Join(argv, " "))

	if err := cmd.Run(); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "command", strings.Join(argv, " "))
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return stdout.Bytes(), wrapped
	}

	return stdout.Bytes(), nil
}
