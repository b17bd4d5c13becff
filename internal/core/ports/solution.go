package ports

import (
	"context"
	"iter"
)

// SolutionParser enumerates the projects of a solution file.
//
//go:generate mockgen -source=solution.go -destination=mocks/mock_solution.go -package=mocks
type SolutionParser interface {
	// ProjectFiles returns the absolute paths of the buildable projects referenced by the solution.
	// Folder entries are excluded.
	ProjectFiles(ctx context.Context, solutionPath string) (iter.Seq[string], error)
}
