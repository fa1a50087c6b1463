package cli

import (
	"fmt"

	"merchantdesk/internal/overlay"

	"github.com/spf13/cobra"
)

func init() {
	var (
		category string
		status   string
		yes      bool
	)

	addCmd := &cobra.Command{
		Use:   "add <name> <country>",
		Short: "Create a merchant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			// The duplicate check needs the current snapshot.
			if _, err := coord.Refresh(); err != nil {
				return err
			}

			if !yes {
				coord.ConfirmDuplicate = func(warning string) bool {
					fmt.Println(warning)
					return confirm("A merchant with this name exists. Add anyway?")
				}
			}

			cat, ok := overlay.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			st, ok := overlay.ParseStatus(status)
			if !ok {
				return fmt.Errorf("unknown status %q", status)
			}

			merchant, err := coord.Create(args[0], args[1], cat, st)
			if err != nil {
				return err
			}

			fmt.Printf("Created merchant #%d %q (%s)\n",
				merchant.ID, merchant.MerchantName, merchant.Country)
			return nil
		},
	}

	addCmd.Flags().StringVar(&category, "category", string(overlay.CategoryRetail), "merchant category")
	addCmd.Flags().StringVar(&status, "status", string(overlay.StatusActive), "merchant status")
	addCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the duplicate-name prompt")
	rootCmd.AddCommand(addCmd)
}
