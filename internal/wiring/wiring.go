// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pkgr/internal/adapters/cas"
	_ "go.trai.ch/pkgr/internal/adapters/config"
	_ "go.trai.ch/pkgr/internal/adapters/feed"
	_ "go.trai.ch/pkgr/internal/adapters/fs"
	_ "go.trai.ch/pkgr/internal/adapters/logger"
	_ "go.trai.ch/pkgr/internal/adapters/manifest"
	_ "go.trai.ch/pkgr/internal/adapters/shell"
	_ "go.trai.ch/pkgr/internal/adapters/solution"
	_ "go.trai.ch/pkgr/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/pkgr/internal/app"
)
