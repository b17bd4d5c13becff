// Package app implements the application layer for pkgr.
package app

import (
	"io"
	"os"

	"go.trai.ch/pkgr/internal/adapters/detector"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/pkgr/internal/engine/aggregate"
	"go.trai.ch/pkgr/internal/engine/restore"
	"go.trai.ch/pkgr/internal/ui/report"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	reader       ports.ManifestReader
	parser       ports.SolutionParser
	fetcher      ports.PackageFetcher
	state        ports.InstallState
	writer       ports.PackageWriter
	cache        ports.PackageCache
	logger       ports.Logger
	tracer       ports.Tracer
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	reader ports.ManifestReader,
	parser ports.SolutionParser,
	fetcher ports.PackageFetcher,
	state ports.InstallState,
	writer ports.PackageWriter,
	cache ports.PackageCache,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		reader:       reader,
		parser:       parser,
		fetcher:      fetcher,
		state:        state,
		writer:       writer,
		cache:        cache,
		logger:       log,
		tracer:       tracer,
		stdout:       os.Stdout,
	}
}

// WithOutput sets the writer reports and values are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

func (a *App) aggregator() *aggregate.Aggregator {
	return aggregate.New(a.reader, a.parser, a.logger)
}

func (a *App) orchestrator() *restore.Orchestrator {
	return restore.NewOrchestrator(a.fetcher, a.writer, a.state, a.cache, a.logger, a.tracer)
}

func (a *App) render(rep *domain.RestoreReport, outputMode string) error {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode)
	return report.New(a.stdout, mode.Styled()).Render(rep)
}

// saveMode resolves the save mode from the flag, then the settings, then the default.
// Unrecognized tokens are reported as warnings.
func (a *App) saveMode(flag string, settings ports.Settings) domain.SaveMode {
	value := flag
	if value == "" {
		value = settings.Value(sectionConfig, keyPackageSaveMode)
	}
	if value == "" {
		return domain.DefaultSaveMode
	}

	mode, invalid, ok := domain.ParseSaveMode(value)
	for _, token := range invalid {
		a.logger.Warn(domain.ErrInvalidSaveModeToken.Error() + ": " + token)
	}
	if !ok {
		return domain.DefaultSaveMode
	}
	return mode
}

func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrFailedToGetWorkingDir.Error())
	}
	return wd, nil
}
