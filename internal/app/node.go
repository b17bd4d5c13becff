package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgr/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/feed"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/solution"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/pkgr/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			solution.NodeID,
			feed.NodeID,
			fs.InstallStateNodeID,
			fs.WriterNodeID,
			cas.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.SolutionParser](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.PackageFetcher](ctx)
	if err != nil {
		return nil, err
	}

	state, err := graft.Dep[ports.InstallState](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.PackageWriter](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.PackageCache](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, reader, parser, fetcher, state, writer, cache, log, tracer), nil
}
