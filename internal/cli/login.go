package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var server, key string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API key for the CLI",
		Long:  "Saves an API key (from 'hvr keys create' on the server host) and optionally the server URL to ~/.config/hvr/config.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(server, key)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or "+DefaultServerURL+")")
	cmd.Flags().StringVar(&key, "key", "", "API key (prompted for when omitted)")

	return cmd
}

func runLogin(serverFlag, key string) error {
	if key == "" {
		fmt.Print("Paste your API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if err := validateAPIKey(key); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}
	cfg.APIKey = key
	if serverFlag != "" {
		cfg.ServerURL = strings.TrimRight(serverFlag, "/")
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("✓ API key saved. Run 'hvr status' to check the connection.")
	return nil
}

// validateAPIKey checks that the key is non-empty and has the expected prefix.
func validateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("no API key provided")
	}
	if !strings.HasPrefix(key, "hvr_") {
		return fmt.Errorf("invalid API key format (should start with hvr_)")
	}
	return nil
}
