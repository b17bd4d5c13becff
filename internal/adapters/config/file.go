package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File is a loaded settings file. It implements ports.Configuration.
type File struct {
	path string
	data Settingsfile
}

// Path returns the file the settings are persisted to.
func (f *File) Path() string {
	return f.path
}

// Value returns the value of key in section.
func (f *File) Value(section, key string) string {
	return f.data.Sections[section][key]
}

// PathValue returns a path-valued setting. Relative paths resolve against the settings file directory.
func (f *File) PathValue(section, key string) string {
	v := f.Value(section, key)
	if v == "" {
		return ""
	}
	if filepath.IsAbs(v) {
		return filepath.Clean(v)
	}
	return filepath.Join(filepath.Dir(f.path), v)
}

// SetValue sets key in section.
func (f *File) SetValue(section, key, value string) error {
	if f.data.Sections == nil {
		f.data.Sections = make(map[string]map[string]string)
	}
	if f.data.Sections[section] == nil {
		f.data.Sections[section] = make(map[string]string)
	}
	f.data.Sections[section][key] = value
	return nil
}

// DeleteValue removes key from section.
func (f *File) DeleteValue(section, key string) error {
	values, ok := f.data.Sections[section]
	if !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(f.data.Sections, section)
	}
	return nil
}

// Sources returns the configured package sources in declaration order.
// Entries without an explicit enabled flag are enabled.
func (f *File) Sources() []domain.SourceDescriptor {
	out := make([]domain.SourceDescriptor, 0, len(f.data.PackageSources))
	for _, dto := range f.data.PackageSources {
		enabled := dto.Enabled == nil || *dto.Enabled
		out = append(out, domain.SourceDescriptor{
			Name:         dto.Name,
			Location:     f.resolveLocation(dto.URL),
			Enabled:      enabled,
			Capabilities: dto.Capabilities,
		})
	}
	return out
}

// resolveLocation anchors relative local feed directories at the settings file.
func (f *File) resolveLocation(location string) string {
	src := domain.SourceDescriptor{Location: location}
	if location == "" || src.IsRemote() || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(filepath.Dir(f.path), location)
}

// Save writes the settings atomically, creating the parent directory when needed.
func (f *File) Save() error {
	data, err := yaml.Marshal(&f.data)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}

	tmp, err := os.CreateTemp(dir, ".pkgr-*.yaml")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", f.path)
	}

	return nil
}
