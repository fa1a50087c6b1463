package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var yes bool

	bulkDeleteCmd := &cobra.Command{
		Use:   "bulk-delete <id>...",
		Short: "Delete several merchants at once",
		Long: `Deletes the given merchants one at a time, in order. The first failure
aborts the run; merchants deleted before the failure stay deleted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			if !yes {
				coord.ConfirmBulkDelete = func(count int) bool {
					return confirm(fmt.Sprintf(
						"Are you sure you want to delete %d merchant(s)? This cannot be undone.", count))
				}
			}

			deleted, err := coord.BulkDelete(ids)
			if err != nil {
				if deleted > 0 {
					fmt.Printf("Deleted %d of %d merchants before the failure.\n", deleted, len(ids))
				}
				return err
			}

			fmt.Printf("Deleted %d merchants.\n", deleted)
			return nil
		},
	}

	bulkDeleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(bulkDeleteCmd)
}
