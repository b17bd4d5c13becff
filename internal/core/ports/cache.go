package ports

import "go.trai.ch/pkgr/internal/core/domain"

// PackageCache stores downloaded package archives across runs.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type PackageCache interface {
	// Get returns the cached archive of id.
	// Returns nil, nil if not found.
	Get(id domain.PackageIdentity) ([]byte, error)

	// Put stores the archive of id.
	Put(id domain.PackageIdentity, archive []byte) error
}
