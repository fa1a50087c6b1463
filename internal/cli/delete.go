package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var yes bool

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a merchant (undoable for a short window)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm("Are you sure you want to delete this merchant?") {
				return nil
			}

			coord, conf, err := newCoordinator()
			if err != nil {
				return err
			}

			// Fetch first so the undo buffer can snapshot the merged row.
			if _, err := coord.Refresh(); err != nil {
				return err
			}

			if err := coord.Delete(id); err != nil {
				return err
			}

			fmt.Printf("Merchant #%d deleted. Run 'merchantctl undo' within %s to restore it.\n",
				id, conf.Client.UndoWindow)
			return nil
		},
	}

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recently deleted merchant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			merchant, err := coord.Undo()
			if err != nil {
				return err
			}

			fmt.Printf("Restored %q (%s) as merchant #%d\n",
				merchant.MerchantName, merchant.Country, merchant.ID)
			return nil
		},
	}
	rootCmd.AddCommand(undoCmd)
}
