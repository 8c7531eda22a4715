package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	var forgetServer bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API key",
		Long:  "Removes the API key from ~/.config/hvr/config.yaml. The server URL is kept unless --forget-server is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(forgetServer)
		},
	}

	cmd.Flags().BoolVar(&forgetServer, "forget-server", false, "also clear the saved server URL")

	return cmd
}

func runLogout(forgetServer bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.APIKey == "" && (!forgetServer || cfg.ServerURL == "") {
		fmt.Println("Not logged in.")
		return nil
	}

	cfg.APIKey = ""
	if forgetServer {
		cfg.ServerURL = ""
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("✓ Logged out.")
	return nil
}
