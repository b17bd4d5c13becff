package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pkgr/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var opts app.InstallOptions

	cmd := &cobra.Command{
		Use:   "install <id>",
		Short: "Install a single package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ID = args[0]
			opts.ConfigFile = c.configFile
			opts.Verbose = c.verbose()
			opts.OutputMode = c.outputMode
			return c.app.Install(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Version, "version", "", "Version of the package to install")
	flags.StringArrayVarP(&opts.Sources, "source", "s", nil, "Package source to use, only the first is consulted")
	flags.StringVar(&opts.OutputDirectory, "output-directory", "", "Folder the package is installed into")
	flags.StringVar(&opts.SaveMode, "package-save-mode", "", "Artifacts to keep: nupkg, nuspec, or nupkg;nuspec")
	flags.BoolVarP(&opts.NoCache, "no-cache", "n", false, "Bypass the download cache")
	return cmd
}
