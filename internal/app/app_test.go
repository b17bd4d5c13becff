package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgr/internal/adapters/manifest"
	"go.trai.ch/pkgr/internal/app"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/pkgr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var feedA = domain.SourceDescriptor{Name: "A", Location: "https://a.example/", Enabled: true}

type appMocks struct {
	loader  *mocks.MockConfigLoader
	cfg     *mocks.MockConfiguration
	parser  *mocks.MockSolutionParser
	fetcher *mocks.MockPackageFetcher
	state   *mocks.MockInstallState
	writer  *mocks.MockPackageWriter
	cache   *mocks.MockPackageCache
	logger  *mocks.MockLogger
	tracer  *mocks.MockTracer
}

// setupApp creates an App working in a fresh temporary directory.
// values maps "section.key" to the settings the configuration returns.
func setupApp(t *testing.T, values map[string]string, configured ...domain.SourceDescriptor) (*app.App, appMocks, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	ctrl := gomock.NewController(t)
	m := appMocks{
		loader:  mocks.NewMockConfigLoader(ctrl),
		cfg:     mocks.NewMockConfiguration(ctrl),
		parser:  mocks.NewMockSolutionParser(ctrl),
		fetcher: mocks.NewMockPackageFetcher(ctrl),
		state:   mocks.NewMockInstallState(ctrl),
		writer:  mocks.NewMockPackageWriter(ctrl),
		cache:   mocks.NewMockPackageCache(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		tracer:  mocks.NewMockTracer(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()
	m.logger.EXPECT().SetVerbose(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(m.cfg, nil).AnyTimes()
	m.cfg.EXPECT().Value(gomock.Any(), gomock.Any()).DoAndReturn(func(section, key string) string {
		return values[section+"."+key]
	}).AnyTimes()
	m.cfg.EXPECT().PathValue(gomock.Any(), gomock.Any()).DoAndReturn(func(section, key string) string {
		v := values[section+"."+key]
		if v == "" || filepath.IsAbs(v) {
			return v
		}
		return filepath.Join(dir, v)
	}).AnyTimes()
	m.cfg.EXPECT().Sources().Return(configured).AnyTimes()

	out := new(bytes.Buffer)
	a := app.New(m.loader, manifest.NewReader(), m.parser, m.fetcher, m.state, m.writer, m.cache, m.logger, m.tracer).
		WithOutput(out)
	return a, m, out, dir
}

func writeManifest(t *testing.T, path string, ids ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("<packages>\n")
	for _, id := range ids {
		b.WriteString(`  <package id="` + id + `" version="1.0.0" />` + "\n")
	}
	b.WriteString("</packages>\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), domain.FilePerm))
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestApp_Restore_Manifest(t *testing.T) {
	a, m, out, dir := setupApp(t, nil, feedA)
	writeManifest(t, filepath.Join(dir, "packages.config"), "Foo", "Bar")
	root := filepath.Join(dir, "libs")
	foo := domain.NewPackageIdentity("Foo", "1.0.0")
	bar := domain.NewPackageIdentity("Bar", "1.0.0")

	m.state.EXPECT().IsInstalled(root, foo).Return(true)
	m.state.EXPECT().IsInstalled(root, bar).Return(false).Times(2)
	m.cache.EXPECT().Get(bar).Return(nil, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), feedA, bar).Return(body("archive"), nil)
	m.cache.EXPECT().Put(bar, []byte("archive")).Return(nil)
	m.writer.EXPECT().Write(root, bar, []byte("archive"), domain.SaveModeNupkg).Return(true, nil)
	m.logger.EXPECT().Info(app.ConsentNotice).Times(1)

	err := a.Restore(context.Background(), app.RestoreOptions{
		PackagesDirectory: "libs",
		OutputMode:        "plain",
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "~ Foo 1.0.0 already present")
	assert.Contains(t, out.String(), "✓ Bar 1.0.0 installed from A")
	assert.Contains(t, out.String(), "2 packages: 1 installed, 1 already present, 0 failed")
}

func TestApp_Restore_Solution(t *testing.T) {
	a, m, out, dir := setupApp(t, map[string]string{"packageRestore.enabled": "true"}, feedA)
	sln := filepath.Join(dir, "App.sln")
	require.NoError(t, os.WriteFile(sln, nil, domain.FilePerm))
	project := filepath.Join(dir, "Web", "Web.csproj")
	require.NoError(t, os.MkdirAll(filepath.Dir(project), domain.DirPerm))
	require.NoError(t, os.WriteFile(project, nil, domain.FilePerm))
	writeManifest(t, filepath.Join(dir, "Web", "packages.config"), "Foo")
	root := filepath.Join(dir, "packages")
	foo := domain.NewPackageIdentity("Foo", "1.0.0")

	m.parser.EXPECT().ProjectFiles(gomock.Any(), sln).Return(func(yield func(string) bool) { yield(project) }, nil)
	m.state.EXPECT().IsInstalled(root, foo).Return(false).Times(2)
	m.fetcher.EXPECT().Fetch(gomock.Any(), feedA, foo).Return(body("archive"), nil)
	m.writer.EXPECT().Write(root, foo, []byte("archive"), domain.SaveModeNupkg).Return(true, nil)

	err := a.Restore(context.Background(), app.RestoreOptions{NoCache: true, OutputMode: "plain"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Foo 1.0.0 installed from A")
}

func TestApp_Restore_PartialFailure(t *testing.T) {
	a, m, out, dir := setupApp(t, map[string]string{"packageRestore.enabled": "true"}, feedA)
	writeManifest(t, filepath.Join(dir, "packages.config"), "Good", "Bad")

	m.state.EXPECT().IsInstalled(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.SourceDescriptor, id domain.PackageIdentity) (io.ReadCloser, error) {
			if id.ID() == "Bad" {
				return nil, domain.ErrPackageNotFound
			}
			return body("archive"), nil
		},
	).Times(2)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	err := a.Restore(context.Background(), app.RestoreOptions{
		SolutionDirectory: dir,
		NoCache:           true,
		OutputMode:        "plain",
	})

	require.ErrorIs(t, err, domain.ErrRestoreFailed)
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Contains(t, out.String(), "✓ Good 1.0.0 installed from A")
	assert.Contains(t, out.String(), "✗ Bad 1.0.0 failed")
}

func TestApp_Restore_NothingMissing(t *testing.T) {
	a, m, out, dir := setupApp(t, nil)
	writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")

	m.state.EXPECT().IsInstalled(gomock.Any(), gomock.Any()).Return(true)

	err := a.Restore(context.Background(), app.RestoreOptions{PackagesDirectory: "packages", OutputMode: "plain"})

	require.NoError(t, err, "sources are not resolved when nothing is missing")
	assert.Contains(t, out.String(), "~ Foo 1.0.0 already present")
}

func TestApp_Restore_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		sources []domain.SourceDescriptor
		setup   func(t *testing.T, dir string)
		opts    app.RestoreOptions
		wantErr error
	}{
		{
			name:    "no restore target",
			setup:   func(*testing.T, string) {},
			wantErr: domain.ErrNoRestoreTarget,
		},
		{
			name: "solution directory with a solution",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "App.sln"), nil, domain.FilePerm))
			},
			opts:    app.RestoreOptions{SolutionDirectory: "elsewhere"},
			wantErr: domain.ErrSolutionDirectoryInvalid,
		},
		{
			name: "packages folder cannot be determined",
			setup: func(t *testing.T, dir string) {
				writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")
			},
			wantErr: domain.ErrCannotDeterminePackagesFolder,
		},
		{
			name: "consent required",
			setup: func(t *testing.T, dir string) {
				writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")
			},
			values:  map[string]string{"packageRestore.enabled": "false"},
			opts:    app.RestoreOptions{RequireConsent: true, PackagesDirectory: "packages"},
			wantErr: domain.ErrConsentRequired,
		},
		{
			name: "no enabled source",
			setup: func(t *testing.T, dir string) {
				writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")
			},
			sources: []domain.SourceDescriptor{{Name: "off", Location: "/off", Enabled: false}},
			opts:    app.RestoreOptions{PackagesDirectory: "packages"},
			wantErr: domain.ErrNoEnabledSource,
		},
		{
			name: "ambiguous solution",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "A.sln"), nil, domain.FilePerm))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "B.sln"), nil, domain.FilePerm))
			},
			wantErr: domain.ErrAmbiguousSolution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, m, _, dir := setupApp(t, tt.values, tt.sources...)
			tt.setup(t, dir)
			m.state.EXPECT().IsInstalled(gomock.Any(), gomock.Any()).Return(false).AnyTimes()

			err := a.Restore(context.Background(), tt.opts)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}

func TestApp_Restore_SaveModeFromSettings(t *testing.T) {
	a, m, _, dir := setupApp(t, map[string]string{
		"config.packageSaveMode": "nuspec;bogus",
		"config.repositoryPath":  "repo",
		"packageRestore.enabled": "true",
	}, feedA)
	writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")
	root := filepath.Join(dir, "repo")

	m.state.EXPECT().IsInstalled(root, gomock.Any()).Return(false).Times(2)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(body("archive"), nil)
	m.writer.EXPECT().Write(root, gomock.Any(), gomock.Any(), domain.SaveModeNuspec).Return(true, nil)
	m.logger.EXPECT().Warn(domain.ErrInvalidSaveModeToken.Error() + ": bogus")

	err := a.Restore(context.Background(), app.RestoreOptions{NoCache: true, OutputMode: "plain"})

	require.NoError(t, err)
}

func TestApp_Restore_SourceOverrideFallsBack(t *testing.T) {
	a, m, out, dir := setupApp(t, map[string]string{"packageRestore.enabled": "true"}, feedA)
	writeManifest(t, filepath.Join(dir, "packages.config"), "Foo")
	adhoc := domain.NewAdHocSource("/srv/feed")

	m.state.EXPECT().IsInstalled(gomock.Any(), gomock.Any()).Return(false).Times(2)
	gomock.InOrder(
		m.fetcher.EXPECT().Fetch(gomock.Any(), adhoc, gomock.Any()).Return(nil, errors.New("offline")),
		m.fetcher.EXPECT().Fetch(gomock.Any(), feedA, gomock.Any()).Return(body("archive"), nil),
	)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	err := a.Restore(context.Background(), app.RestoreOptions{
		Sources:           []string{"/srv/feed"},
		PackagesDirectory: "packages",
		NoCache:           true,
		OutputMode:        "plain",
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "installed from A")
}

func TestApp_Install(t *testing.T) {
	t.Run("requires id and version", func(t *testing.T) {
		a, _, _, _ := setupApp(t, nil)

		require.ErrorIs(t, a.Install(context.Background(), app.InstallOptions{}), domain.ErrMissingPackageID)
		require.ErrorIs(t, a.Install(context.Background(), app.InstallOptions{ID: "Foo"}), domain.ErrMissingPackageVersion)
	})

	t.Run("installs from the primary source into the working directory", func(t *testing.T) {
		second := domain.SourceDescriptor{Name: "B", Location: "/b", Enabled: true}
		a, m, out, dir := setupApp(t, nil, feedA, second)
		foo := domain.NewPackageIdentity("Foo", "2.0.0")

		m.state.EXPECT().IsInstalled(dir, foo).Return(false).Times(2)
		m.cache.EXPECT().Get(foo).Return(nil, nil)
		m.fetcher.EXPECT().Fetch(gomock.Any(), feedA, foo).Return(nil, domain.ErrPackageNotFound)

		err := a.Install(context.Background(), app.InstallOptions{ID: "Foo", Version: "2.0.0", OutputMode: "plain"})

		require.ErrorIs(t, err, domain.ErrRestoreFailed)
		assert.Contains(t, out.String(), "✗ Foo 2.0.0 failed")
	})

	t.Run("uses the output directory", func(t *testing.T) {
		a, m, out, dir := setupApp(t, map[string]string{"config.repositoryPath": "ignored"}, feedA)
		root := filepath.Join(dir, "out")
		foo := domain.NewPackageIdentity("Foo", "2.0.0")

		m.state.EXPECT().IsInstalled(root, foo).Return(false).Times(2)
		m.fetcher.EXPECT().Fetch(gomock.Any(), feedA, foo).Return(body("archive"), nil)
		m.writer.EXPECT().Write(root, foo, []byte("archive"), domain.SaveModeNupkg).Return(true, nil)

		err := a.Install(context.Background(), app.InstallOptions{
			ID: "Foo", Version: "2.0.0", OutputDirectory: "out", NoCache: true, OutputMode: "plain",
		})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "✓ Foo 2.0.0 installed from A")
	})

	t.Run("already installed", func(t *testing.T) {
		a, m, out, _ := setupApp(t, map[string]string{"config.repositoryPath": "repo"}, feedA)
		m.state.EXPECT().IsInstalled(gomock.Any(), gomock.Any()).Return(true)

		err := a.Install(context.Background(), app.InstallOptions{ID: "Foo", Version: "2.0.0", OutputMode: "plain"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "~ Foo 2.0.0 already present")
	})
}

func TestApp_Config(t *testing.T) {
	t.Run("set and delete", func(t *testing.T) {
		a, m, _, dir := setupApp(t, nil)
		m.cfg.EXPECT().Path().Return(filepath.Join(dir, "pkgr.yaml")).AnyTimes()
		gomock.InOrder(
			m.cfg.EXPECT().SetValue("config", "repositoryPath", filepath.Join("vendor", "pkgs")).Return(nil),
			m.cfg.EXPECT().DeleteValue("config", "http_proxy").Return(nil),
			m.cfg.EXPECT().Save().Return(nil),
		)

		err := a.Config(context.Background(), app.ConfigOptions{
			Set:    []string{"repositoryPath=" + filepath.Join(dir, "vendor", "pkgs"), "http_proxy="},
			AsPath: true,
		})

		require.NoError(t, err)
	})

	t.Run("invalid assignment", func(t *testing.T) {
		a, _, _, _ := setupApp(t, nil)

		err := a.Config(context.Background(), app.ConfigOptions{Set: []string{"novalue"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrInvalidConfigAssignment.Error())
	})

	t.Run("get", func(t *testing.T) {
		a, _, out, dir := setupApp(t, map[string]string{"config.repositoryPath": "repo"})

		require.NoError(t, a.Config(context.Background(), app.ConfigOptions{Key: "repositoryPath"}))
		require.NoError(t, a.Config(context.Background(), app.ConfigOptions{Key: "repositoryPath", AsPath: true}))

		assert.Equal(t, "repo\n"+filepath.Join(dir, "repo")+"\n", out.String())
	})

	t.Run("get missing key warns", func(t *testing.T) {
		a, m, out, _ := setupApp(t, nil)
		m.logger.EXPECT().Warn("Key 'nope' not found.")

		require.NoError(t, a.Config(context.Background(), app.ConfigOptions{Key: "nope"}))
		assert.Empty(t, out.String())
	})
}
