package ports

import "context"

// CommandRunner runs external programs and captures their output.
//
//go:generate mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type CommandRunner interface {
	// Run executes argv in dir and returns its standard output.
	// A missing executable is reported with exec.ErrNotFound in the chain.
	Run(ctx context.Context, dir string, argv []string) ([]byte, error)
}
