package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestParse is returned when a package manifest cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse package manifest")

	// ErrManifestNotFound is returned when a required package manifest does not exist.
	ErrManifestNotFound = zerr.New("package manifest not found")

	// ErrSolutionParse is returned when a solution file is malformed.
	ErrSolutionParse = zerr.New("failed to parse solution file")

	// ErrSolutionParserUnavailable is returned when the solution parsing facility cannot be located or invoked.
	ErrSolutionParserUnavailable = zerr.New("solution parser is unavailable")

	// ErrAmbiguousSolution is returned when a directory contains more than one solution file.
	ErrAmbiguousSolution = zerr.New("found multiple solution files, specify the one to use")

	// ErrSolutionNotFound is returned when an explicitly requested solution cannot be located.
	ErrSolutionNotFound = zerr.New("cannot locate a solution file")

	// ErrNoRestoreTarget is returned when no solution or manifest is found in the working directory.
	ErrNoRestoreTarget = zerr.New("no solution or packages.config found in the current directory")

	// ErrNoEnabledSource is returned when neither configuration nor overrides provide a package source.
	ErrNoEnabledSource = zerr.New("no enabled package source")

	// ErrInvalidSaveModeToken is reported as a warning for unrecognized package save mode tokens.
	ErrInvalidSaveModeToken = zerr.New("invalid package save mode token")

	// ErrSolutionDirectoryInvalid is returned when a solution directory is given while restoring a solution.
	ErrSolutionDirectoryInvalid = zerr.New("the solution directory option is not valid when restoring a solution")

	// ErrCannotDeterminePackagesFolder is returned when no install root can be derived.
	ErrCannotDeterminePackagesFolder = zerr.New("cannot determine the packages folder, use --packages-directory or --solution-directory")

	// ErrConsentRequired is returned when package restore requires consent that was not granted.
	ErrConsentRequired = zerr.New("package restore consent is required but has not been granted")

	// ErrRestoreFailed is returned when at least one package could not be restored.
	ErrRestoreFailed = zerr.New("package restore failed")

	// ErrPackageNotFound is returned when a source does not carry the requested package.
	ErrPackageNotFound = zerr.New("package not found in source")

	// ErrSourceUnreachable is returned when a source location cannot be accessed.
	ErrSourceUnreachable = zerr.New("package source is unreachable")

	// ErrFeedRequestFailed is returned when a feed responds with an unexpected status.
	ErrFeedRequestFailed = zerr.New("package feed request failed")

	// ErrArchiveTooLarge is returned when a source serves an archive above the size limit.
	ErrArchiveTooLarge = zerr.New("package archive exceeds the size limit")

	// ErrInvalidPackageArchive is returned when a package archive is not a valid zip or lacks a manifest.
	ErrInvalidPackageArchive = zerr.New("invalid package archive")

	// ErrPackageWriteFailed is returned when a package cannot be written to the install root.
	ErrPackageWriteFailed = zerr.New("failed to write package to install root")

	// ErrCacheReadFailed is returned when the download cache cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read download cache")

	// ErrCacheWriteFailed is returned when the download cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write download cache")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrConfigWriteFailed is returned when the settings file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write settings file")

	// ErrInvalidConfigAssignment is returned when a config assignment is not in key=value form.
	ErrInvalidConfigAssignment = zerr.New("invalid config assignment, expected key=value")

	// ErrMissingPackageID is returned when install is invoked without a package id.
	ErrMissingPackageID = zerr.New("package id is required")

	// ErrMissingPackageVersion is returned when install is invoked without a version.
	ErrMissingPackageVersion = zerr.New("package version is required")

	// ErrFailedToGetWorkingDir is returned when the working directory cannot be determined.
	ErrFailedToGetWorkingDir = zerr.New("failed to get working directory")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")
)
