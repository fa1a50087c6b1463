// Package cli implements the merchantctl command tree. Every command builds
// a coordinator against the configured merchant API and the local overlay
// state directory, runs one action, and prints the outcome.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"merchantdesk/internal/coordinator"
	"merchantdesk/internal/overlay"
	"merchantdesk/internal/remote"
	"merchantdesk/internal/view"
	"merchantdesk/pkg/config"
	"merchantdesk/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "merchantctl",
	Short: "Merchant management workbench",
	Long: `merchantctl manages merchants through the merchantdesk API.

Remote data (name, country) lives in the merchant store; favorites,
categories, statuses, the activity log, and the dark-mode preference are
local to this machine and survive across runs.

BROWSE:
  list        List merchants with search, filters, and sorting
  stats       Show summary statistics
  activity    Show the recent activity log

EDIT:
  add         Create a merchant
  update      Update a merchant's name and country
  delete      Delete a merchant (undoable for a short window)
  undo        Restore the most recently deleted merchant
  bulk-delete Delete several merchants at once

LOCAL ATTRIBUTES:
  favorite    Toggle a merchant's favorite flag
  category    Set a merchant's category
  status      Set a merchant's status
  theme       Toggle or set the dark-mode preference

DATA:
  import      Create merchants from a CSV file
  export      Write the current view to a CSV file
`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newCoordinator wires config, logger, overlay store, and API client into a
// ready coordinator. Called once per command invocation.
func newCoordinator() (*coordinator.Coordinator, *config.Config, error) {
	conf, err := config.Load("merchantdesk")
	if err != nil {
		return nil, nil, err
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: "merchantctl",
	}); err != nil {
		return nil, nil, err
	}

	ov, err := overlay.Open(conf.Client.StateDir, logger.GetLogger())
	if err != nil {
		return nil, nil, err
	}

	client := remote.NewClient(conf.Client.APIBaseURL)
	coord := coordinator.New(client, ov, logger.GetLogger(), coordinator.Options{
		UndoWindow:     conf.Client.UndoWindow,
		NoticeDuration: conf.Client.NoticeDuration,
	})
	return coord, conf, nil
}

// confirm asks a yes/no question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// queryFlags carries the shared search/filter/sort flags used by list and
// export.
type queryFlags struct {
	search    string
	category  string
	status    string
	sortKey   string
	favorites bool
	desc      bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "substring match against name or country")
	cmd.Flags().StringVar(&f.category, "category", view.FilterAll, "filter by category")
	cmd.Flags().StringVar(&f.status, "status", view.FilterAll, "filter by status")
	cmd.Flags().StringVar(&f.sortKey, "sort", "id", "sort column: id, merchant_name, country")
	cmd.Flags().BoolVar(&f.favorites, "favorites", false, "show favorites only")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

func (f *queryFlags) toQuery() view.Query {
	return view.Query{
		Search:        f.search,
		Category:      f.category,
		Status:        f.status,
		FavoritesOnly: f.favorites,
		SortKey:       view.SortKey(f.sortKey),
		Descending:    f.desc,
	}
}

// parseID parses a positional merchant ID argument
func parseID(arg string) (uint, error) {
	var id uint
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid merchant ID %q", arg)
	}
	return id, nil
}
