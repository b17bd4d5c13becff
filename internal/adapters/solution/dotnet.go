package solution

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"iter"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/zerr"
)

const dotnetExecutable = "dotnet"

// Dotnet lists projects through the dotnet SDK ("dotnet sln <file> list").
type Dotnet struct {
	runner ports.CommandRunner
}

// NewDotnet creates a Dotnet parser that runs commands through runner.
func NewDotnet(runner ports.CommandRunner) *Dotnet {
	return &Dotnet{runner: runner}
}

// ProjectFiles implements ports.SolutionParser.
func (d *Dotnet) ProjectFiles(ctx context.Context, solutionPath string) (iter.Seq[string], error) {
	abs, err := filepath.Abs(solutionPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSolutionParse.Error()), "solution", solutionPath)
	}
	dir := filepath.Dir(abs)

	out, err := d.runner.Run(ctx, dir, []string{dotnetExecutable, "sln", abs, "list"})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSolutionParserUnavailable.Error()), "solution", solutionPath)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSolutionParse.Error()), "solution", solutionPath)
	}

	paths, err := parseListing(out)
	if err != nil {
		return nil, zerr.With(err, "solution", solutionPath)
	}

	return func(yield func(string) bool) {
		for _, p := range paths {
			if !yield(resolveProjectPath(dir, p)) {
				return
			}
		}
	}, nil
}

// parseListing reads the project paths printed below the dashed separator line.
func parseListing(out []byte) ([]string, error) {
	var (
		paths   []string
		started bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case !started && strings.Trim(line, "-") == "":
			started = true
		case started:
			paths = append(paths, line)
		case strings.HasPrefix(line, "No projects found"):
			return nil, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSolutionParse.Error())
	}

	if !started {
		return nil, zerr.With(domain.ErrSolutionParse, "reason", "unrecognized project listing")
	}
	return paths, nil
}
