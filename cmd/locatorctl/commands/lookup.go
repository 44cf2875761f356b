package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/proximity"
	"github.com/UnknownOlympus/locator/internal/repository"
	"github.com/spf13/cobra"
)

func (c *cli) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <query>",
		Short: "Geocode a query to a single location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.resolver()
			if err != nil {
				return err
			}
			defer res.Close()

			loc, err := res.Resolve(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f,%.6f\t%s\n", loc.Latitude, loc.Longitude, loc.Address)
			return nil
		},
	}
}

func (c *cli) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "List address suggestions for a partial query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.resolver()
			if err != nil {
				return err
			}
			defer res.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range res.Lookup(cmd.Context(), strings.Join(args, " ")) {
				fmt.Fprintf(w, "%s\t%s\t%.6f,%.6f\n", s.Formatted, s.Kind, s.Latitude, s.Longitude)
			}
			return w.Flush()
		},
	}
}

func (c *cli) nearbyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "nearby <query>",
		Short: "Rank active law firms by distance from a location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.resolver()
			if err != nil {
				return err
			}
			defer res.Close()

			loc, err := res.Resolve(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			pool, err := repository.NewDatabase(cmd.Context(), c.cfg.Database.DSN())
			if err != nil {
				return err
			}
			defer pool.Close()

			firms, err := repository.NewRepository(pool, c.log).FetchActiveFirms(cmd.Context())
			if err != nil {
				return err
			}

			ranked := proximity.Rank(loc.Coordinates, firms)
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Origin: %s (%.6f,%.6f)\n", loc.Address, loc.Latitude, loc.Longitude)
			return printRanked(cmd, ranked)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum firms to print, 0 for all")
	return cmd
}

func printRanked(cmd *cobra.Command, ranked []models.RankedFirm) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMILES\tFIRM\tADDRESS")
	for i, firm := range ranked {
		fmt.Fprintf(w, "%d\t%.1f\t%s\t%s, %s, %s %s\n",
			i+1, firm.Distance, firm.Name, firm.StreetAddress, firm.City, firm.State, firm.ZipCode)
	}
	return w.Flush()
}
