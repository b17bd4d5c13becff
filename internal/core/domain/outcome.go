package domain

import (
	"errors"
	"fmt"
)

// OutcomeStatus is the result of restoring one package.
type OutcomeStatus int

const (
	// StatusInstalled means the package was fetched and materialized.
	StatusInstalled OutcomeStatus = iota
	// StatusAlreadyPresent means the package was found in the install root.
	StatusAlreadyPresent
	// StatusFailed means no source could provide the package.
	StatusFailed
)

// String returns a lower-case label.
func (s OutcomeStatus) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusAlreadyPresent:
		return "already present"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// RestoreOutcome is the per-package result of a restore.
type RestoreOutcome struct {
	Reference PackageReference
	Status    OutcomeStatus
	// Source is the source that provided the package. Zero unless installed from a source.
	Source SourceDescriptor
	// FromCache is set when the package was materialized from the download cache.
	FromCache bool
	// Err is the last fetch error. Set only when Status is StatusFailed.
	Err error
}

// RestoreReport collects the outcomes of one run.
type RestoreReport struct {
	Outcomes []RestoreOutcome
}

// Failed reports whether any package failed.
func (r *RestoreReport) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Count returns the number of outcomes with the given status.
func (r *RestoreReport) Count(status OutcomeStatus) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Err joins the errors of every failed outcome, or returns nil.
func (r *RestoreReport) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed && o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// FetchError records why a package could not be fetched from a source.
type FetchError struct {
	Source   SourceDescriptor
	Identity PackageIdentity
	Err      error
}

// Error implements error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s from %s: %v", e.Identity, e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
