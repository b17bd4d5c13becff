package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/pkgr/internal/engine/discovery"
	"go.trai.ch/pkgr/internal/engine/restore"
	"go.trai.ch/pkgr/internal/engine/sources"
	"go.trai.ch/zerr"
)

const (
	sectionConfig         = "config"
	sectionPackageRestore = "packageRestore"
	keyRepositoryPath     = "repositoryPath"
	keyPackageSaveMode    = "packageSaveMode"
	keyEnabled            = "enabled"

	// ConsentNotice is printed once per restore when consent is not required.
	ConsentNotice = "Package restore is enabled. To opt out, set packageRestore.enabled to false in " +
		domain.SettingsFileName + " and run restore with --require-consent."
)

// RestoreOptions configuration for the Restore method.
type RestoreOptions struct {
	// Target is a solution, a directory holding one, or a packages.config. Empty auto-discovers.
	Target string
	// Sources overrides the configured sources. Configured sources become fallbacks.
	Sources []string
	// SaveMode is a ';'-separated token list. Empty uses the settings or nupkg.
	SaveMode string
	// PackagesDirectory overrides the install root.
	PackagesDirectory string
	// SolutionDirectory anchors the install root in manifest mode.
	SolutionDirectory string
	// DisableParallel restores packages one at a time.
	DisableParallel bool
	// MaxParallel bounds concurrent restores. Zero uses the CPU count.
	MaxParallel int
	// NoCache bypasses the download cache.
	NoCache bool
	// RequireConsent fails unless the settings grant package restore consent.
	RequireConsent bool
	// ConfigFile overrides settings discovery.
	ConfigFile string
	// Verbose enables debug output.
	Verbose bool
	// OutputMode is auto, styled or plain.
	OutputMode string
}

// Restore installs every package the restore target references that is missing from the install root.
//
//nolint:cyclop // orchestration function
func (a *App) Restore(ctx context.Context, opts RestoreOptions) error {
	a.logger.SetVerbose(opts.Verbose)

	ctx, span := a.tracer.Start(ctx, "Restore")
	defer span.End()

	wd, err := workingDir()
	if err != nil {
		return err
	}

	// 1. Resolve the target and its settings
	target, err := discovery.DetermineTarget(wd, opts.Target)
	if err != nil {
		return err
	}
	span.SetAttribute("mode", target.Mode.String())

	if target.Mode == discovery.ModeSolution && opts.SolutionDirectory != "" {
		return zerr.With(domain.ErrSolutionDirectoryInvalid, "solution", target.Path)
	}

	settingsDir := target.Dir()
	if opts.SolutionDirectory != "" {
		settingsDir = opts.SolutionDirectory
	}
	cfg, err := a.configLoader.Load(settingsDir, opts.ConfigFile)
	if err != nil {
		return err
	}

	notice, err := consent(cfg, opts.RequireConsent)
	if err != nil {
		return err
	}

	root, err := packagesFolder(opts, target, cfg)
	if err != nil {
		return err
	}
	mode := a.saveMode(opts.SaveMode, cfg)

	// 2. Collect references and diff against the install root
	refs, err := a.collect(ctx, target)
	if err != nil {
		return err
	}
	missing := restore.MissingPackages(refs, func(id domain.PackageIdentity) bool {
		return a.state.IsInstalled(root, id)
	})
	a.logger.Debug("restoring " + target.Path + " into " + root)

	// 3. Fetch what is missing
	rep := &domain.RestoreReport{}
	if missing.Len() > 0 {
		list, err := sources.Resolve(cfg, opts.Sources)
		if err != nil {
			return err
		}
		a.logger.Debug("primary sources: " + sources.Describe(list.Primary))
		a.logger.Debug("secondary sources: " + sources.Describe(list.Secondary))

		rep, err = a.orchestrator().Restore(ctx, missing, restore.Options{
			Root:            root,
			Sources:         list,
			SaveMode:        mode,
			DisableParallel: opts.DisableParallel,
			MaxParallel:     opts.MaxParallel,
			NoCache:         opts.NoCache,
			Notice:          notice,
		})
		if err != nil {
			return err
		}
	}

	// 4. Report
	full := restore.Complete(refs, rep)
	if err := a.render(full, opts.OutputMode); err != nil {
		return err
	}
	if full.Failed() {
		err := errors.Join(domain.ErrRestoreFailed, full.Err())
		span.RecordError(err)
		return err
	}
	return nil
}

func (a *App) collect(ctx context.Context, target discovery.Target) (*domain.ReferenceSet, error) {
	ctx, span := a.tracer.Start(ctx, "Collect references")
	defer span.End()

	refs, err := a.aggregator().Aggregate(ctx, target)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("packages", refs.Len())
	return refs, nil
}

// consent checks the packageRestore settings. It returns the notice to print once,
// which is empty when the user configured consent explicitly.
func consent(settings ports.Settings, required bool) (string, error) {
	value := strings.TrimSpace(settings.Value(sectionPackageRestore, keyEnabled))
	if required && !isTrue(value) {
		return "", domain.ErrConsentRequired
	}
	if value != "" {
		return "", nil
	}
	return ConsentNotice, nil
}

func isTrue(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// packagesFolder picks the install root: the explicit directory, the configured
// repositoryPath, or a packages folder next to the solution.
func packagesFolder(opts RestoreOptions, target discovery.Target, settings ports.Settings) (string, error) {
	if opts.PackagesDirectory != "" {
		return filepath.Abs(opts.PackagesDirectory)
	}
	if repo := settings.PathValue(sectionConfig, keyRepositoryPath); repo != "" {
		return repo, nil
	}

	switch {
	case target.Mode == discovery.ModeSolution:
		return filepath.Join(target.Dir(), domain.DefaultRepositoryPath), nil
	case opts.SolutionDirectory != "":
		dir, err := filepath.Abs(opts.SolutionDirectory)
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrCannotDeterminePackagesFolder.Error())
		}
		return filepath.Join(dir, domain.DefaultRepositoryPath), nil
	default:
		return "", domain.ErrCannotDeterminePackagesFolder
	}
}
