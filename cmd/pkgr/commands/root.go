// Package commands implements the CLI commands for the pkgr package restore tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pkgr/internal/app"
	"go.trai.ch/pkgr/internal/build"
)

const verbosityDetailed = "detailed"

// CLI represents the command line interface for pkgr.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	verbosity  string
	outputMode string
	configFile string
}

// Application represents the application logic interface.
type Application interface {
	Restore(ctx context.Context, opts app.RestoreOptions) error
	Install(ctx context.Context, opts app.InstallOptions) error
	Config(ctx context.Context, opts app.ConfigOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pkgr",
		Short:         "Restore packages declared by packages.config manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.verbosity, "verbosity", "normal", "Output verbosity: quiet, normal, or detailed")
	flags.StringVarP(&c.outputMode, "output", "o", "auto", "Output mode: auto, styled, or plain")
	flags.StringVar(&c.configFile, "config-file", "", "Settings file to use instead of discovering "+settingsName)

	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) verbose() bool {
	return c.verbosity == verbosityDetailed
}
