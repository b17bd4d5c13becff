package ports

import (
	"context"
	"io"

	"go.trai.ch/pkgr/internal/core/domain"
)

// PackageFetcher retrieves package archives from package sources.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type PackageFetcher interface {
	// Fetch opens the archive of id from source.
	// It fails with domain.ErrPackageNotFound when the source does not carry the package.
	Fetch(ctx context.Context, source domain.SourceDescriptor, id domain.PackageIdentity) (io.ReadCloser, error)
}
