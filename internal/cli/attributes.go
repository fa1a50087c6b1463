package cli

import (
	"fmt"

	"merchantdesk/internal/overlay"

	"github.com/spf13/cobra"
)

// Commands for the local-only merchant attributes. None of these touch the
// remote store.
func init() {
	favoriteCmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a merchant's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			if coord.Overlay().ToggleFavorite(id) {
				fmt.Printf("Merchant #%d added to favorites.\n", id)
			} else {
				fmt.Printf("Merchant #%d removed from favorites.\n", id)
			}
			return nil
		},
	}
	rootCmd.AddCommand(favoriteCmd)

	categoryCmd := &cobra.Command{
		Use:   "category <id> <category>",
		Short: "Set a merchant's category",
		Long:  "Valid categories: Retail, Food & Beverage, Electronics, Fashion, Services, Healthcare, Other.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cat, ok := overlay.ParseCategory(args[1])
			if !ok {
				return fmt.Errorf("unknown category %q", args[1])
			}

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			coord.Overlay().SetCategory(id, cat)
			fmt.Printf("Merchant #%d categorized as %s.\n", id, cat)
			return nil
		},
	}
	rootCmd.AddCommand(categoryCmd)

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a merchant's status",
		Long:  "Valid statuses: Active, Inactive, Pending.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st, ok := overlay.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}

			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			coord.Overlay().SetStatus(id, st)
			fmt.Printf("Merchant #%d marked %s.\n", id, st)
			return nil
		},
	}
	rootCmd.AddCommand(statusCmd)

	themeCmd := &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Toggle or set the dark-mode preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, _, err := newCoordinator()
			if err != nil {
				return err
			}

			ov := coord.Overlay()
			dark := !ov.DarkMode()
			if len(args) == 1 {
				dark = args[0] == "dark"
			}
			ov.SetDarkMode(dark)

			if dark {
				fmt.Println("Dark mode on.")
			} else {
				fmt.Println("Dark mode off.")
			}
			return nil
		},
	}
	rootCmd.AddCommand(themeCmd)
}
