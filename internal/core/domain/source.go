package domain

import "strings"

// SourceDescriptor is a configured or ad-hoc package source.
type SourceDescriptor struct {
	// Name is the configured name. Ad-hoc sources use their location.
	Name string
	// Location is a feed URL or a local directory.
	Location string
	// Enabled reports whether configuration enables the source.
	Enabled bool
	// Capabilities lists optional resource handles the source declares.
	Capabilities []string
}

// NewAdHocSource wraps a location that matches no configured source.
func NewAdHocSource(location string) SourceDescriptor {
	return SourceDescriptor{
		Name:     location,
		Location: location,
		Enabled:  true,
	}
}

// Matches reports whether ref names the source by name or location, ignoring case.
func (s SourceDescriptor) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	return strings.EqualFold(s.Name, ref) || sameLocation(s.Location, ref)
}

// IsRemote reports whether the source is reached over HTTP.
func (s SourceDescriptor) IsRemote() bool {
	lower := strings.ToLower(s.Location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// String returns the source name, or its location when unnamed.
func (s SourceDescriptor) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Location
}

// SourceList is the ordered set of sources consulted for a restore.
// Secondary sources are only tried after every primary source failed for a package.
type SourceList struct {
	Primary   []SourceDescriptor
	Secondary []SourceDescriptor
}

// Attempts returns the sources in the order they are tried for one package:
// primary sources first, then secondary sources whose location was not already listed.
func (l SourceList) Attempts() []SourceDescriptor {
	out := make([]SourceDescriptor, 0, len(l.Primary)+len(l.Secondary))
	out = append(out, l.Primary...)
	for _, s := range l.Secondary {
		if !containsLocation(out, s.Location) {
			out = append(out, s)
		}
	}
	return out
}

func containsLocation(sources []SourceDescriptor, location string) bool {
	for _, s := range sources {
		if sameLocation(s.Location, location) {
			return true
		}
	}
	return false
}

func sameLocation(a, b string) bool {
	return strings.EqualFold(strings.TrimRight(a, "/\\"), strings.TrimRight(b, "/\\"))
}
