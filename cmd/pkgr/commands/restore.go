package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pkgr/internal/app"
	"go.trai.ch/pkgr/internal/core/domain"
)

const settingsName = domain.SettingsFileName

func (c *CLI) newRestoreCmd() *cobra.Command {
	var opts app.RestoreOptions

	cmd := &cobra.Command{
		Use:   "restore [solution|packages.config]",
		Short: "Restore the packages of a solution or manifest",
		Long: "Restore downloads every package referenced by the solution's projects, or by a single\n" +
			"packages.config, that is missing from the packages folder. Without an argument the\n" +
			"solution in the current directory is used, else its packages.config.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Target = args[0]
			}
			opts.ConfigFile = c.configFile
			opts.Verbose = c.verbose()
			opts.OutputMode = c.outputMode
			return c.app.Restore(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.Sources, "source", "s", nil, "Package source to use, may be repeated")
	flags.StringVar(&opts.SaveMode, "package-save-mode", "", "Artifacts to keep: nupkg, nuspec, or nupkg;nuspec")
	flags.StringVar(&opts.PackagesDirectory, "packages-directory", "", "Folder packages are installed into")
	flags.StringVar(&opts.SolutionDirectory, "solution-directory", "", "Solution folder, used when restoring a packages.config")
	flags.BoolVar(&opts.DisableParallel, "disable-parallel-processing", false, "Restore packages one at a time")
	flags.IntVar(&opts.MaxParallel, "max-parallel", 0, "Maximum concurrent restores (default: number of CPUs)")
	flags.BoolVarP(&opts.NoCache, "no-cache", "n", false, "Bypass the download cache")
	flags.BoolVar(&opts.RequireConsent, "require-consent", false, "Fail unless package restore consent is granted in "+settingsName)
	return cmd
}
