package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName is the conventional name of a package manifest.
	ManifestFileName = "packages.config"

	// SolutionExt is the file extension of solution files.
	SolutionExt = ".sln"

	// SettingsFileName is the name of the settings file.
	SettingsFileName = "pkgr.yaml"

	// DefaultRepositoryPath is the packages folder name used when the settings do not name one.
	DefaultRepositoryPath = "packages"

	// PackageExt is the file extension of package archives.
	PackageExt = ".nupkg"

	// PackageManifestExt is the file extension of the manifest stored inside a package archive.
	PackageManifestExt = ".nuspec"

	// AppDirName is the name of the per-user application directory.
	AppDirName = "pkgr"

	// CacheDirName is the name of the download cache directory.
	CacheDirName = "packages"

	// StagingDirPrefix prefixes the temporary directories used while materializing a package.
	StagingDirPrefix = ".staging-"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// MaxArchiveSize caps the size of a downloaded package archive.
	MaxArchiveSize = 1 << 30
)

// ProjectManifestFileName returns the project-specific manifest name, packages.<project>.config.
func ProjectManifestFileName(projectName string) string {
	return "packages." + projectName + ".config"
}

// IsManifestFileName reports whether name is the conventional manifest file name, ignoring case.
func IsManifestFileName(name string) bool {
	return strings.EqualFold(filepath.Base(name), ManifestFileName)
}

// PackageDirName returns the install directory name of a package, <id>.<version>.
func PackageDirName(id PackageIdentity) string {
	return id.ID() + "." + id.Version()
}

// PackageFileName returns the archive file name of a package, <id>.<version>.nupkg.
func PackageFileName(id PackageIdentity) string {
	return PackageDirName(id) + PackageExt
}

// PackageManifestFileName returns the extracted manifest file name of a package, <id>.nuspec.
func PackageManifestFileName(id PackageIdentity) string {
	return id.ID() + PackageManifestExt
}

// DefaultCachePath returns the download cache directory below the given user cache root.
func DefaultCachePath(userCacheDir string) string {
	return filepath.Join(userCacheDir, AppDirName, CacheDirName)
}

// DefaultUserSettingsPath returns the settings file below the given user config root.
func DefaultUserSettingsPath(userConfigDir string) string {
	return filepath.Join(userConfigDir, AppDirName, SettingsFileName)
}
