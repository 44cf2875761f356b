// Package commands implements locatorctl, the operator CLI for address
// lookups, ranking checks and schema migrations.
package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/locator/internal/config"
	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/metrics"
	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg     *config.Config
	log     *slog.Logger
	verbose bool
}

// Execute runs the root command with os.Args until it finishes or the
// process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "locatorctl",
		Short:         "Operator tools for the closing attorney locator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.cfg = config.MustLoad()

			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			c.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(c.resolveCmd(), c.suggestCmd(), c.nearbyCmd(), c.migrateCmd())
	return root
}

func (c *cli) resolver() (*resolver.Resolver, error) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	provider, err := geocoding.Build(geocoding.ProviderConfig{
		Type:        geocoding.ProviderType(c.cfg.Provider.Type),
		APIKey:      c.cfg.Provider.APIKey,
		BaseURL:     c.cfg.Provider.BaseURL,
		UserAgent:   c.cfg.Provider.UserAgent,
		CountryCode: c.cfg.Search.CountryCode,
		RateLimit:   c.cfg.Provider.RateLimit,
		Timeout:     c.cfg.Provider.Timeout,
		Logger:      c.log,
	}, nil, m)
	if err != nil {
		return nil, err
	}

	return resolver.New(provider, resolver.Config{
		CountryCode:        c.cfg.Search.CountryCode,
		StateAbbreviations: c.cfg.Search.StateAbbreviations,
		Debounce:           c.cfg.Search.Debounce,
		SuggestLimit:       c.cfg.Search.SuggestLimit,
		RequestTimeout:     c.cfg.Search.RequestTimeout,
	}, c.log, m), nil
}
