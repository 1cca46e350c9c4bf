// Package commands implements the CLI commands for modcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/build"
	"go.trai.ch/modcache/internal/core/domain"
)

// CLI represents the command line interface for modcache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	setJSON  func(enable bool)
	setTrace func(enable bool)
}

// Application represents the application logic interface.
type Application interface {
	Sync(ctx context.Context, opts app.Options) (*domain.SyncResult, error)
	Fingerprint(ctx context.Context, opts app.Options) (domain.Fingerprint, error)
	Status(ctx context.Context, opts app.Options, statusOpts app.StatusOptions) (*domain.Status, error)
	List(ctx context.Context, opts app.Options, listOpts app.ListOptions) ([]domain.EntryInfo, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modcache",
		Short:         "A content-addressed cache for installed Puppet modules",
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Settings file (default: "+domain.SettingsFileName+" if present)")
	flags.String("cache-root", "", "Directory holding the cache entries")
	flags.String("deps-file", "", "Dependency file to fingerprint and install")
	flags.String("link", "", "Path of the published link (default: <cache-root>/"+domain.CurrentLinkName+")")
	flags.Bool("log-json", false, "Write log records as JSON")
	flags.Bool("trace", false, "Log every traced step with its duration")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if logJSON, _ := cmd.Flags().GetBool("log-json"); logJSON && c.setJSON != nil {
			c.setJSON(true)
		}
		if trace, _ := cmd.Flags().GetBool("trace"); trace && c.setTrace != nil {
			c.setTrace(true)
		}
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newFingerprintCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newListCmd())
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

// SetJSONLogging registers the callback that switches the logger to JSON when --log-json is given.
func (c *CLI) SetJSONLogging(fn func(enable bool)) {
	c.setJSON = fn
}

// SetTracing registers the callback that enables span logging when --trace is given.
func (c *CLI) SetTracing(fn func(enable bool)) {
	c.setTrace = fn
}

// options reads the persistent input flags.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	cacheRoot, _ := flags.GetString("cache-root")
	depsFile, _ := flags.GetString("deps-file")
	link, _ := flags.GetString("link")

	return app.Options{
		ConfigPath: configPath,
		CacheRoot:  cacheRoot,
		DepsFile:   depsFile,
		LinkPath:   link,
	}
}
