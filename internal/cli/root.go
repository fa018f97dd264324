// Package cli implements itunesctl, a command-line front end to the search
// cache. It shares the store and upstream client with the HTTP server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itunescache/itunescache/internal/constants"
	"github.com/itunescache/itunescache/internal/domain"
	"github.com/itunescache/itunescache/internal/httpclient"
	"github.com/itunescache/itunescache/internal/itunes"
	"github.com/itunescache/itunescache/internal/logger"
	"github.com/itunescache/itunescache/internal/search"
	"github.com/itunescache/itunescache/internal/store"
)

const envPrefix = "ITUNESCTL"

// app carries per-invocation state shared by subcommands.
type app struct {
	v       *viper.Viper
	db      *store.DB
	service *search.Service
}

// NewRootCmd builds the itunesctl command tree. Each call returns an
// independent tree so tests can run commands in isolation.
func NewRootCmd(version, buildTime string) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "itunesctl",
		Short:         "Search the iTunes catalog and inspect the local search cache",
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is ./itunesctl.yml if present)")
	flags.StringP("db", "d", constants.DefaultDBPath, "Path to SQLite database file")
	flags.StringP("output", "o", "yaml", "Output format: yaml or json")
	flags.String("itunes-url", constants.DefaultITunesURL, "Upstream search endpoint")
	flags.String("country", constants.DefaultCountry, "Default storefront country")
	flags.String("policy", constants.DefaultCachePolicy, "Cache policy: first-write-wins or always-refresh")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")

	for _, name := range []string{"config", "db", "output", "itunes-url", "country", "policy", "log-level"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", name, err)
		}
	}

	root.AddCommand(
		a.newSearchCmd(),
		a.newHistoryCmd(),
		a.newListCmd(),
		a.newShowCmd(),
		a.newDeleteCmd(),
	)
	return root
}

// initConfig layers an optional config file and ITUNESCTL_* environment
// variables under the command-line flags.
func (a *app) initConfig() error {
	v := a.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("itunesctl")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// open builds the store and service for commands that need them.
func (a *app) open() (*search.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	format := a.v.GetString("output")
	if format != formatYAML && format != formatJSON {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	policy, err := domain.ParseCachePolicy(a.v.GetString("policy"))
	if err != nil {
		return nil, err
	}

	db, err := store.NewSQLiteDB(a.v.GetString("db"))
	if err != nil {
		return nil, err
	}
	a.db = db

	log := logger.New(logger.Config{Level: a.v.GetString("log-level"), Output: os.Stderr})
	client := itunes.NewClient(a.v.GetString("itunes-url"), httpclient.New(constants.UpstreamTimeout))
	a.service = search.NewService(db, client, log.WithComponent("cli"), search.Config{
		Policy:         policy,
		DefaultCountry: a.v.GetString("country"),
	})
	return a.service, nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	a.service = nil
	return err
}

// run opens the service and hands it to fn with the command context.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, svc *search.Service) (any, error)) error {
	svc, err := a.open()
	if err != nil {
		return err
	}
	defer a.close() //nolint:errcheck // best effort
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), a.v.GetString("output"), out)
}
