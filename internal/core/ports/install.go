package ports

import "go.trai.ch/pkgr/internal/core/domain"

// InstallState answers whether a package is materialized under an install root.
//
//go:generate mockgen -source=install.go -destination=mocks/mock_install.go -package=mocks
type InstallState interface {
	// IsInstalled reports whether id is present under root.
	IsInstalled(root string, id domain.PackageIdentity) bool
}

// PackageWriter materializes package archives under an install root.
type PackageWriter interface {
	// Write persists the artifacts selected by mode.
	// It returns false when the package appeared under root while it was being written.
	Write(root string, id domain.PackageIdentity, archive []byte, mode domain.SaveMode) (bool, error)
}
