package ports

import "go.trai.ch/pkgr/internal/core/domain"

// ManifestReader parses package manifests.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses the manifest at path into a reference set.
	// A missing file yields an empty set. Malformed content fails with domain.ErrManifestParse.
	Read(path string) (*domain.ReferenceSet, error)
}
