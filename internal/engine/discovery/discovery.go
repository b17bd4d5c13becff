// Package discovery locates the solution or manifest a restore operates on.
package discovery

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Mode selects how references are collected.
type Mode int

const (
	// ModeSolution collects references from every project of a solution.
	ModeSolution Mode = iota
	// ModeManifest reads a single manifest.
	ModeManifest
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeManifest {
		return "manifest"
	}
	return "solution"
}

// Target is the resolved input of a restore.
type Target struct {
	Mode Mode
	// Path is the absolute solution or manifest path.
	Path string
}

// Dir returns the directory holding the target file.
func (t Target) Dir() string {
	return filepath.Dir(t.Path)
}

// FindSolution resolves path to a solution file.
// An existing file is used verbatim. A directory is scanned for exactly one solution file.
// found is false when no solution exists, so callers can fall back to manifest mode.
func FindSolution(path string) (solution string, found bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrSolutionNotFound.Error()), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrSolutionNotFound.Error()), "path", abs)
	}
	if !info.IsDir() {
		return abs, true, nil
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrSolutionNotFound.Error()), "path", abs)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), domain.SolutionExt) {
			continue
		}
		candidates = append(candidates, e.Name())
	}

	switch len(candidates) {
	case 0:
		return "", false, nil
	case 1:
		return filepath.Join(abs, candidates[0]), true, nil
	default:
		slices.Sort(candidates)
		err := zerr.With(domain.ErrAmbiguousSolution, "dir", abs)
		return "", false, zerr.With(err, "candidates", strings.Join(candidates, ", "))
	}
}

// DetermineTarget picks the restore target for arg relative to workDir.
//
// An argument named packages.config selects manifest mode. Any other argument must
// resolve to a solution. Without an argument, a solution in workDir is preferred over
// a packages.config next to it.
func DetermineTarget(workDir, arg string) (Target, error) {
	if arg != "" {
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		if domain.IsManifestFileName(path) {
			return Target{Mode: ModeManifest, Path: filepath.Clean(path)}, nil
		}

		sln, found, err := FindSolution(path)
		if err != nil {
			return Target{}, err
		}
		if !found {
			return Target{}, zerr.With(domain.ErrSolutionNotFound, "path", path)
		}
		return Target{Mode: ModeSolution, Path: sln}, nil
	}

	sln, found, err := FindSolution(workDir)
	if err != nil {
		return Target{}, err
	}
	if found {
		return Target{Mode: ModeSolution, Path: sln}, nil
	}

	manifest := filepath.Join(workDir, domain.ManifestFileName)
	if info, err := os.Stat(manifest); err == nil && !info.IsDir() {
		abs, err := filepath.Abs(manifest)
		if err != nil {
			return Target{}, zerr.Wrap(err, domain.ErrNoRestoreTarget.Error())
		}
		return Target{Mode: ModeManifest, Path: abs}, nil
	}

	return Target{}, zerr.With(domain.ErrNoRestoreTarget, "dir", workDir)
}
