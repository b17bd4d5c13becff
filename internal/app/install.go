package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/engine/restore"
	"go.trai.ch/pkgr/internal/engine/sources"
)

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	ID      string
	Version string
	// Sources overrides the configured sources. Only the first one is used.
	Sources []string
	// OutputDirectory is the install root. Empty uses repositoryPath or the working directory.
	OutputDirectory string
	SaveMode        string
	NoCache         bool
	ConfigFile      string
	Verbose         bool
	OutputMode      string
}

// Install installs one package from the primary source.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	a.logger.SetVerbose(opts.Verbose)

	if strings.TrimSpace(opts.ID) == "" {
		return domain.ErrMissingPackageID
	}
	if strings.TrimSpace(opts.Version) == "" {
		return domain.ErrMissingPackageVersion
	}

	ctx, span := a.tracer.Start(ctx, "Install")
	defer span.End()

	wd, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := a.configLoader.Load(wd, opts.ConfigFile)
	if err != nil {
		return err
	}

	source, err := sources.ResolvePrimary(cfg, opts.Sources)
	if err != nil {
		return err
	}

	root := opts.OutputDirectory
	switch {
	case root != "":
		if root, err = filepath.Abs(root); err != nil {
			return err
		}
	case cfg.PathValue(sectionConfig, keyRepositoryPath) != "":
		root = cfg.PathValue(sectionConfig, keyRepositoryPath)
	default:
		root = wd
	}

	refs := domain.NewReferenceSet(domain.NewPackageReference(opts.ID, opts.Version))
	missing := restore.MissingPackages(refs, func(id domain.PackageIdentity) bool {
		return a.state.IsInstalled(root, id)
	})

	rep, err := a.orchestrator().Restore(ctx, missing, restore.Options{
		Root:            root,
		Sources:         domain.SourceList{Primary: []domain.SourceDescriptor{source}},
		SaveMode:        a.saveMode(opts.SaveMode, cfg),
		DisableParallel: true,
		NoCache:         opts.NoCache,
	})
	if err != nil {
		return err
	}

	full := restore.Complete(refs, rep)
	if err := a.render(full, opts.OutputMode); err != nil {
		return err
	}
	if full.Failed() {
		return errors.Join(domain.ErrRestoreFailed, full.Err())
	}
	return nil
}
