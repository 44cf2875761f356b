package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/UnknownOlympus/locator/internal/migrations"
	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list schema migrations",
		ValidArgs: []string{"up", "down", "status"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, err := migrations.Open(c.cfg.Database.DSN(), c.log)
			if err != nil {
				return err
			}
			defer migrator.Close()

			ctx := cmd.Context()
			switch args[0] {
			case "up":
				return migrator.Up(ctx)
			case "down":
				return migrator.Down(ctx)
			default:
				statuses, err := migrator.Status(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
				for _, st := range statuses {
					fmt.Fprintf(w, "%05d\t%t\t%s\n", st.Version, st.Applied, st.Path)
				}
				return w.Flush()
			}
		},
	}
}
