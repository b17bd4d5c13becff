package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgr/internal/core/ports"
)

const (
	// InstallStateNodeID is the unique identifier for the install state Graft node.
	InstallStateNodeID graft.ID = "adapter.fs.install_state"
	// WriterNodeID is the unique identifier for the package writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[ports.InstallState]{
		ID:        InstallStateNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InstallState, error) {
			return NewInstallRoot(), nil
		},
	})

	graft.Register(graft.Node[ports.PackageWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageWriter, error) {
			return NewInstallRoot(), nil
		},
	})
}
