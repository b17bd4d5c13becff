package cas

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgr/internal/core/domain"
	"go.trai.ch/pkgr/internal/core/ports"
)

// NodeID is the unique identifier for the package cache Graft node.
const NodeID graft.ID = "adapter.package_cache"

func init() {
	graft.Register(graft.Node[ports.PackageCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageCache, error) {
			dir, err := os.UserCacheDir()
			if err != nil {
				dir = os.TempDir()
			}
			return NewStore(domain.DefaultCachePath(dir)), nil
		},
	})
}
