package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"merchantdesk/internal/view"

	"github.com/spf13/cobra"
)

func init() {
	flags := &queryFlags{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List merchants with search, filters, and sorting",
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			merchants, err := coord.Refresh()
			if err != nil {
				return err
			}

			q := flags.toQuery()
			rows := view.Rows(merchants, coord.Overlay(), q)

			if len(rows) == 0 {
				if q.Search != "" || q.FavoritesOnly || q.Category != view.FilterAll || q.Status != view.FilterAll {
					fmt.Println("No merchants match your filters.")
				} else {
					fmt.Println("No merchants found. Add one with 'merchantctl add'.")
				}
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FAV\tID\tNAME\tCOUNTRY\tCATEGORY\tSTATUS")
			for _, row := range rows {
				fav := " "
				if row.Favorite {
					fav = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
					fav, row.ID, row.MerchantName, row.Country, row.Category, row.Status)
			}
			w.Flush()

			stats := view.ComputeStats(merchants, coord.Overlay(), len(rows))
			fmt.Printf("\n%d merchants, %d countries, %d favorites, %d active, showing %d\n",
				stats.Total, stats.Countries, stats.Favorites, stats.Active, stats.Visible)
			return nil
		},
	}

	flags.register(listCmd)
	rootCmd.AddCommand(listCmd)
}
