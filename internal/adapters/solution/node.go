package solution

import (
	"context"
	"os"
	"os/exec"

	"github.com/grindlemire/graft"
	"go.trai.ch/pkgr/internal/adapters/logger"
	"go.trai.ch/pkgr/internal/adapters/shell"
	"go.trai.ch/pkgr/internal/core/ports"
)

// NodeID is the unique identifier for the solution parser Graft node.
const NodeID graft.ID = "adapter.solution_parser"

func init() {
	graft.Register(graft.Node[ports.SolutionParser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SolutionParser, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			parser, name := Select(ctx, runner, os.Getenv, exec.LookPath)
			log.Debug("using " + name + " solution parser")
			return parser, nil
		},
	})
}
