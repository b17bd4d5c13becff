package domain

import "strings"

// SaveMode selects which artifacts are persisted for a restored package.
type SaveMode uint8

const (
	// SaveModeNupkg persists the package archive.
	SaveModeNupkg SaveMode = 1 << iota
	// SaveModeNuspec persists the manifest extracted from the archive.
	SaveModeNuspec
)

const (
	// SaveModeNone persists nothing. Packages are fetched and validated only.
	SaveModeNone SaveMode = 0

	// DefaultSaveMode is used when no valid mode is configured.
	DefaultSaveMode = SaveModeNupkg
)

const saveModeSeparator = ";"

// Has reports whether every flag of f is set in m.
func (m SaveMode) Has(f SaveMode) bool {
	return f != 0 && m&f == f
}

// String returns the token list form of the mode.
func (m SaveMode) String() string {
	if m == SaveModeNone {
		return "none"
	}
	var tokens []string
	if m.Has(SaveModeNupkg) {
		tokens = append(tokens, "nupkg")
	}
	if m.Has(SaveModeNuspec) {
		tokens = append(tokens, "nuspec")
	}
	return strings.Join(tokens, saveModeSeparator)
}

// ParseSaveMode parses a ';'-separated token list such as "nupkg;nuspec".
// Tokens are case-insensitive. Unrecognized tokens are returned in invalid and otherwise ignored.
// The token "none" selects SaveModeNone when no other valid token is present.
// ok reports whether at least one valid token was found.
func ParseSaveMode(value string) (mode SaveMode, invalid []string, ok bool) {
	for _, raw := range strings.Split(value, saveModeSeparator) {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		switch strings.ToLower(token) {
		case "nupkg":
			mode |= SaveModeNupkg
		case "nuspec":
			mode |= SaveModeNuspec
		case "none":
		default:
			invalid = append(invalid, token)
			continue
		}
		ok = true
	}
	return mode, invalid, ok
}
