package cli

import (
	"fmt"
	"os"

	"merchantdesk/internal/view"

	"github.com/spf13/cobra"
)

// Commands for moving merchant data in and out as CSV, plus the read-only
// stats and activity views.
func init() {
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create merchants from a CSV file",
		Long: `Reads rows of name,country,category,status after a header row. Rows
missing a name or country are skipped silently; only the imported count is
reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			imported, err := coord.Import(f)
			if err != nil {
				if imported > 0 {
					fmt.Printf("Imported %d merchants before the failure.\n", imported)
				}
				return err
			}

			fmt.Printf("Imported %d merchants.\n", imported)
			return nil
		},
	}
	rootCmd.AddCommand(importCmd)

	exportFlags := &queryFlags{}
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the current view to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			merchants, err := coord.Refresh()
			if err != nil {
				return err
			}
			rows := view.Rows(merchants, coord.Overlay(), exportFlags.toQuery())

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}

			if err := coord.Export(f, rows); err != nil {
				f.Close()
				os.Remove(args[0])
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Printf("Exported %d merchants to %s.\n", len(rows), args[0])
			return nil
		},
	}
	exportFlags.register(exportCmd)
	rootCmd.AddCommand(exportCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show summary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			merchants, err := coord.Refresh()
			if err != nil {
				return err
			}
			rows := view.Rows(merchants, coord.Overlay(), view.Query{})
			stats := view.ComputeStats(merchants, coord.Overlay(), len(rows))

			fmt.Printf("Total merchants: %d\n", stats.Total)
			fmt.Printf("Countries:       %d\n", stats.Countries)
			fmt.Printf("Favorites:       %d\n", stats.Favorites)
			fmt.Printf("Active:          %d\n", stats.Active)
			return nil
		},
	}
	rootCmd.AddCommand(statsCmd)

	activityCmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			entries := coord.Overlay().Activity()
			if len(entries) == 0 {
				fmt.Println("No activity yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  [%s]  %s\n", e.Timestamp, e.Kind, e.Text)
			}
			return nil
		},
	}
	rootCmd.AddCommand(activityCmd)
}
