package solution

import (
	"context"
	"strings"

	"go.trai.ch/pkgr/internal/core/ports"
)

const (
	// EnvStrategy forces a strategy: "builtin" or "dotnet".
	EnvStrategy = "PKGR_SOLUTION_PARSER"

	// StrategyBuiltin names the Builtin parser.
	StrategyBuiltin = "builtin"

	// StrategyDotnet names the Dotnet parser.
	StrategyDotnet = "dotnet"
)

// Select picks the parser for this process. The environment override wins, then the dotnet SDK
// when it is on PATH and answers "dotnet sln --help", then the Builtin parser.
// A dotnet runtime without the SDK fails that check.
func Select(
	ctx context.Context,
	runner ports.CommandRunner,
	getenv func(string) string,
	lookPath func(string) (string, error),
) (ports.SolutionParser, string) {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvStrategy))) {
	case StrategyBuiltin:
		return NewBuiltin(), StrategyBuiltin
	case StrategyDotnet:
		return NewDotnet(runner), StrategyDotnet
	}

	if _, err := lookPath(dotnetExecutable); err == nil {
		if _, err := runner.Run(ctx, "", []string{dotnetExecutable, "sln", "--help"}); err == nil {
			return NewDotnet(runner), StrategyDotnet
		}
	}
	return NewBuiltin(), StrategyBuiltin
}
