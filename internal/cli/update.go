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
	)

	updateCmd := &cobra.Command{
		Use:   "update <id> <name> <country>",
		Short: "Update a merchant's name and country",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			// Unspecified overlay flags keep their current values.
			entry := coord.Overlay().Get(id)
			cat := entry.Category
			st := entry.Status
			if cmd.Flags().Changed("category") {
				var ok bool
				if cat, ok = overlay.ParseCategory(category); !ok {
					return fmt.Errorf("unknown category %q", category)
				}
			}
			if cmd.Flags().Changed("status") {
				var ok bool
				if st, ok = overlay.ParseStatus(status); !ok {
					return fmt.Errorf("unknown status %q", status)
				}
			}

			merchant, err := coord.Update(id, args[1], args[2], cat, st)
			if err != nil {
				return err
			}

			fmt.Printf("Updated merchant #%d %q (%s)\n",
				merchant.ID, merchant.MerchantName, merchant.Country)
			return nil
		},
	}

	updateCmd.Flags().StringVar(&category, "category", "", "merchant category")
	updateCmd.Flags().StringVar(&status, "status", "", "merchant status")
	rootCmd.AddCommand(updateCmd)
}
