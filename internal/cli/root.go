// Package cli defines the cobra command tree for the studio admin tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/config"
	"github.com/evcraddock/hvr-studio/internal/store"
)

var (
	flagFormat  string
	flagEnvFile string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hvr",
		Short:         "Run and manage the studio back office",
		Long:          "Serve the studio API and manage customers, projects, inquiries, bookings, quotes, coupons and site analytics from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file read by commands that open the store")

	root.AddCommand(
		newServeCmd(),
		newKeysCmd(),
		newCustomersCmd(),
		newProjectsCmd(),
		newInquiriesCmd(),
		newBookingsCmd(),
		newQuotesCmd(),
		newCouponsCmd(),
		newAnalyticsCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// openStore loads server config and opens the configured store directly.
// Used by serve and keys, which run next to the data.
func openStore(ctx context.Context) (*config.Config, store.Store, error) {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return cfg, s, nil
}

// newAPIClient creates an HTTP client for the studio API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getAPIKey())
}

// newRemoveCmd builds the "remove <id>" subcommand for one kind of record.
func newRemoveCmd(label, short string, del func(api *client.Client, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := del(newAPIClient(), id); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]any{"id": id, "removed": true})
			}
			fmt.Printf("%s %s removed.\n", label, id)
			return nil
		},
	}
}

// runUpdate sends a partial update built from flags. empty means no
// flag was set.
func runUpdate(label, id string, empty bool, apply func(api *client.Client) error) error {
	if empty {
		return fmt.Errorf("nothing to update: set at least one flag")
	}
	if err := apply(newAPIClient()); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]any{"id": id, "updated": true})
	}
	fmt.Printf("%s %s updated.\n", label, id)
	return nil
}

// changedString returns the flag's value, or nil if it was not set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeStore closes the store, logging any error to stderr.
func closeStore(s store.Store) {
	if err := s.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
	}
}
