// Package aggregate folds the manifests of a restore target into one reference set.
package aggregate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/pkgr/internal/engine/discovery"
	"go.trai.ch/zerr"
)

// Aggregator collects package references from a manifest or from every project of a solution.
type Aggregator struct {
	reader ports.ManifestReader
	parser ports.SolutionParser
	logger ports.Logger
}

// New creates a new Aggregator.
func New(reader ports.ManifestReader, parser ports.SolutionParser, logger ports.Logger) *Aggregator {
	return &Aggregator{
		reader: reader,
		parser: parser,
		logger: logger,
	}
}

// Aggregate collects the references declared by target.
func (a *Aggregator) Aggregate(ctx context.Context, target discovery.Target) (*domain.ReferenceSet, error) {
	if target.Mode == discovery.ModeManifest {
		return a.FromManifest(target.Path)
	}
	return a.FromSolution(ctx, target.Path)
}

// FromManifest reads a single manifest, which must exist.
func (a *Aggregator) FromManifest(path string) (*domain.ReferenceSet, error) {
	if !isFile(path) {
		return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
	}
	return a.reader.Read(path)
}

// FromSolution reads the manifest of every project in the solution.
// Projects missing on disk are skipped with a warning. Projects without a manifest contribute nothing.
func (a *Aggregator) FromSolution(ctx context.Context, solutionPath string) (*domain.ReferenceSet, error) {
	projects, err := a.parser.ProjectFiles(ctx, solutionPath)
	if err != nil {
		return nil, err
	}

	set := domain.NewReferenceSet()
	for project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !isFile(project) {
			a.logger.Warn("Project file " + project + " cannot be found.")
			continue
		}

		refs, err := a.reader.Read(ManifestPath(project))
		if err != nil {
			return nil, zerr.With(err, "project", project)
		}
		set.AddAll(refs)
	}

	return set, nil
}

// ManifestPath returns the manifest that belongs to a project file:
// packages.<project>.config when present, else packages.config next to it.
func ManifestPath(projectFile string) string {
	dir := filepath.Dir(projectFile)
	name := strings.TrimSuffix(filepath.Base(projectFile), filepath.Ext(projectFile))

	specific := filepath.Join(dir, domain.ProjectManifestFileName(name))
	if isFile(specific) {
		return specific
	}
	return filepath.Join(dir, domain.ManifestFileName)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
