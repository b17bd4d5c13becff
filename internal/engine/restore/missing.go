// Package restore computes the packages a restore must fetch and fetches them.
package restore

import (
	"go.trai.ch/pkgr/internal/core/domain"
)

// InstalledFunc reports whether a package is already materialized.
type InstalledFunc func(id domain.PackageIdentity) bool

// MissingPackages returns the references of refs that installed does not report as present.
// Declaration order is preserved.
func MissingPackages(refs *domain.ReferenceSet, installed InstalledFunc) *domain.ReferenceSet {
	missing := domain.NewReferenceSet()
	for ref := range refs.All() {
		if !installed(ref.Identity) {
			missing.Add(ref)
		}
	}
	return missing
}

// Complete extends report with an already-present outcome for every reference of all
// it does not mention, ordering outcomes by declaration.
func Complete(all *domain.ReferenceSet, report *domain.RestoreReport) *domain.RestoreReport {
	byKey := make(map[domain.IdentityKey]domain.RestoreOutcome)
	if report != nil {
		for _, o := range report.Outcomes {
			byKey[o.Reference.Identity.Key()] = o
		}
	}

	out := &domain.RestoreReport{Outcomes: make([]domain.RestoreOutcome, 0, all.Len())}
	for ref := range all.All() {
		o, ok := byKey[ref.Identity.Key()]
		if !ok {
			o = domain.RestoreOutcome{Reference: ref, Status: domain.StatusAlreadyPresent}
		}
		out.Outcomes = append(out.Outcomes, o)
	}
	return out
}
