package ports

import "go.trai.ch/pkgr/internal/core/domain"

// Settings reads and writes string values by section and key.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type Settings interface {
	// Value returns the value of key in section, or "" when unset.
	Value(section, key string) string
	// PathValue returns a path-valued setting resolved against the file that declared it.
	PathValue(section, key string) string
	// SetValue sets key in section.
	SetValue(section, key, value string) error
	// DeleteValue removes key from section. Removing an absent key is not an error.
	DeleteValue(section, key string) error
}

// SourceProvider lists the configured package sources.
type SourceProvider interface {
	// Sources returns every configured source, enabled or not, in declaration order.
	Sources() []domain.SourceDescriptor
}

// Configuration is a loaded settings file.
type Configuration interface {
	Settings
	SourceProvider
	// Path returns the file the configuration is persisted to.
	Path() string
	// Save persists pending changes.
	Save() error
}

// ConfigLoader loads the configuration effective for a directory.
type ConfigLoader interface {
	// Load returns the configuration for dir. A non-empty file overrides discovery.
	Load(dir, file string) (Configuration, error)
}
