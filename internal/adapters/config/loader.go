// Package config loads and persists pkgr.yaml settings files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	// UserConfigDir returns the per-user configuration root. Defaults to os.UserConfigDir.
	UserConfigDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, UserConfigDir: os.UserConfigDir}
}

// Load returns the settings effective for dir.
// An explicit file is used as is. Otherwise the nearest pkgr.yaml in dir or its parents is used,
// falling back to the per-user settings file. Files that do not exist yet load as empty.
func (l *Loader) Load(dir, file string) (ports.Configuration, error) {
	path, err := l.findSettings(dir, file)
	if err != nil {
		return nil, err
	}

	f := &File{path: path}
	if err := readAndUnmarshalYAML(path, &f.data); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Debug("using settings " + path)
	return f, nil
}

func (l *Loader) findSettings(dir, file string) (string, error) {
	if file != "" {
		return filepath.Abs(file)
	}

	current, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	for {
		candidate := filepath.Join(current, domain.SettingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	userDir, err := l.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return domain.DefaultUserSettingsPath(userDir), nil
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is discovered or supplied by the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
