package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgr/internal/adapters/config"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const settingsYAML = `config:
  repositoryPath: ../packages
  packageSaveMode: nupkg;nuspec
packageRestore:
  enabled: "true"
packageSources:
  - name: nuget.org
    url: https://api.nuget.org/v3-flatcontainer/
  - name: local
    url: feed
    capabilities: [flat]
  - name: legacy
    url: https://legacy.example/api
    enabled: false
`

func newLoader(t *testing.T, userDir string) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	l := config.NewLoader(log)
	l.UserConfigDir = func() (string, error) { return userDir, nil }
	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestLoader_DiscoversParentSettings(t *testing.T) {
	root := t.TempDir()
	settingsPath := filepath.Join(root, "repo", domain.SettingsFileName)
	writeFile(t, settingsPath, settingsYAML)
	nested := filepath.Join(root, "repo", "src", "App")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := newLoader(t, t.TempDir()).Load(nested, "")
	require.NoError(t, err)

	assert.Equal(t, settingsPath, cfg.Path())
	assert.Equal(t, "nupkg;nuspec", cfg.Value("config", "packageSaveMode"))
	assert.Equal(t, "true", cfg.Value("packageRestore", "enabled"))
	assert.Equal(t, filepath.Join(root, "packages"), cfg.PathValue("config", "repositoryPath"))
	assert.Empty(t, cfg.Value("config", "missing"))
	assert.Empty(t, cfg.PathValue("config", "missing"))

	sources := cfg.Sources()
	require.Len(t, sources, 3)
	assert.Equal(t, domain.SourceDescriptor{
		Name:     "nuget.org",
		Location: "https://api.nuget.org/v3-flatcontainer/",
		Enabled:  true,
	}, sources[0])
	assert.Equal(t, filepath.Join(root, "repo", "feed"), sources[1].Location)
	assert.Equal(t, []string{"flat"}, sources[1].Capabilities)
	assert.False(t, sources[2].Enabled)
}

func TestLoader_FallsBackToUserSettings(t *testing.T) {
	userDir := t.TempDir()
	writeFile(t, domain.DefaultUserSettingsPath(userDir), "config:\n  repositoryPath: /opt/packages\n")

	cfg, err := newLoader(t, userDir).Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultUserSettingsPath(userDir), cfg.Path())
	assert.Equal(t, "/opt/packages", cfg.PathValue("config", "repositoryPath"))
}

func TestLoader_ExplicitMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	cfg, err := newLoader(t, t.TempDir()).Load(t.TempDir(), path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.Empty(t, cfg.Sources())
}

func TestLoader_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.SettingsFileName)
	writeFile(t, path, "packageSources: [unterminated\n")

	_, err := newLoader(t, t.TempDir()).Load(filepath.Dir(path), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestFile_SetDeleteSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", domain.SettingsFileName)
	loader := newLoader(t, t.TempDir())

	cfg, err := loader.Load("", path)
	require.NoError(t, err)

	require.NoError(t, cfg.SetValue("config", "repositoryPath", "deps"))
	require.NoError(t, cfg.SetValue("config", "http_proxy", "http://proxy:8080"))
	require.NoError(t, cfg.DeleteValue("config", "http_proxy"))
	require.NoError(t, cfg.DeleteValue("absent", "key"))
	require.NoError(t, cfg.Save())

	reloaded, err := loader.Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "deps", reloaded.Value("config", "repositoryPath"))
	assert.Empty(t, reloaded.Value("config", "http_proxy"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
