package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
)

// ConfigOptions configuration for the Config method.
type ConfigOptions struct {
	// Set holds key=value assignments. An empty value deletes the key.
	Set []string
	// AsPath stores assigned values relative to the settings file and resolves read values against it.
	AsPath bool
	// Key is the key to print when Set is empty.
	Key        string
	ConfigFile string
}

// Config reads or writes values in the config section of the settings file.
func (a *App) Config(_ context.Context, opts ConfigOptions) error {
	wd, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := a.configLoader.Load(wd, opts.ConfigFile)
	if err != nil {
		return err
	}

	if len(opts.Set) > 0 {
		for _, assignment := range opts.Set {
			key, value, ok := strings.Cut(assignment, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return zerr.With(domain.ErrInvalidConfigAssignment, "assignment", assignment)
			}

			if value == "" {
				err = cfg.DeleteValue(sectionConfig, key)
			} else {
				if opts.AsPath {
					value = relativeTo(filepath.Dir(cfg.Path()), value)
				}
				err = cfg.SetValue(sectionConfig, key, value)
			}
			if err != nil {
				return err
			}
		}
		return cfg.Save()
	}

	if opts.Key == "" {
		return nil
	}

	value := cfg.Value(sectionConfig, opts.Key)
	if opts.AsPath {
		value = cfg.PathValue(sectionConfig, opts.Key)
	}
	if value == "" {
		a.logger.Warn(fmt.Sprintf("Key '%s' not found.", opts.Key))
		return nil
	}

	_, err = fmt.Fprintln(a.stdout, value)
	return err
}

// relativeTo expresses path relative to dir when both share a root.
func relativeTo(dir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return abs
	}
	return rel
}
