package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pkgr/internal/app"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	var opts app.ConfigOptions

	cmd := &cobra.Command{
		Use:   "config [key]",
		Short: "Get or set values in the config section of " + settingsName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(opts.Set) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			if len(args) == 1 {
				opts.Key = args[0]
			}
			opts.ConfigFile = c.configFile
			return c.app.Config(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "Assign key=value, an empty value removes the key")
	cmd.Flags().BoolVar(&opts.AsPath, "as-path", false, "Treat values as paths relative to the settings file")
	return cmd
}
