// Package sources computes the package sources a restore consults.
package sources

import (
	"strings"

	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
)

// Resolve computes the primary and secondary source lists.
//
// With overrides, the overrides become the primary list and every enabled configured
// source becomes the secondary list. Without overrides, the enabled configured sources
// are primary and nothing is secondary. An empty primary list fails with
// domain.ErrNoEnabledSource.
func Resolve(provider ports.SourceProvider, overrides []string) (domain.SourceList, error) {
	configured := provider.Sources()
	enabled := enabledSources(configured)

	var list domain.SourceList
	if refs := nonBlank(overrides); len(refs) > 0 {
		list.Primary = make([]domain.SourceDescriptor, 0, len(refs))
		for _, ref := range refs {
			list.Primary = append(list.Primary, resolveOverride(configured, ref))
		}
		list.Secondary = enabled
	} else {
		list.Primary = enabled
	}

	if len(list.Primary) == 0 {
		return domain.SourceList{}, domain.ErrNoEnabledSource
	}
	return list, nil
}

// ResolvePrimary returns the single source used by operations that target exactly one feed:
// the first override if any, else the first enabled configured source.
func ResolvePrimary(provider ports.SourceProvider, overrides []string) (domain.SourceDescriptor, error) {
	configured := provider.Sources()
	if refs := nonBlank(overrides); len(refs) > 0 {
		return resolveOverride(configured, refs[0]), nil
	}

	for _, s := range configured {
		if s.Enabled {
			return s, nil
		}
	}
	return domain.SourceDescriptor{}, domain.ErrNoEnabledSource
}

// resolveOverride maps ref to the configured source it names, or wraps it as an ad-hoc source.
func resolveOverride(configured []domain.SourceDescriptor, ref string) domain.SourceDescriptor {
	for _, s := range configured {
		if s.Matches(ref) {
			s.Enabled = true
			return s
		}
	}
	return domain.NewAdHocSource(ref)
}

func enabledSources(configured []domain.SourceDescriptor) []domain.SourceDescriptor {
	var out []domain.SourceDescriptor
	for _, s := range configured {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func nonBlank(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Describe lists source names for log lines.
func Describe(sources []domain.SourceDescriptor) string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.String())
	}
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
