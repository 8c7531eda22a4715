package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/auth"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage admin API keys",
		Long:  "Create, list and revoke API keys. These commands open the configured store directly and must run where the server's data lives.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create an API key",
			Args:  cobra.ExactArgs(1),
			RunE:  runKeysCreate,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List API keys",
			Args:  cobra.NoArgs,
			RunE:  runKeysList,
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Revoke an API key",
			Args:  cobra.ExactArgs(1),
			RunE:  runKeysDelete,
		},
	)

	return cmd
}

func runKeysCreate(cmd *cobra.Command, args []string) error {
	_, s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(s)

	raw, key, err := auth.NewAPIKeyStore(s).Create(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]any{"key": raw, "record": key})
	}

	fmt.Printf("Created key %q (%s)\n\n", key.Name, key.ID)
	fmt.Printf("  %s\n\n", raw)
	fmt.Println("Store it now; it will not be shown again. Use it with 'hvr login'.")
	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	_, s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(s)

	keys, err := auth.NewAPIKeyStore(s).List(cmd.Context())
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(keys)
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k.ID, k.Name, k.KeyPrefix + "…", formatTime(&k.CreatedAt), formatTime(k.LastUsedAt)})
	}
	return printTable("keys", []string{"ID", "NAME", "PREFIX", "CREATED", "LAST USED"}, rows)
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	_, s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(s)

	if err := auth.NewAPIKeyStore(s).Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]any{"id": args[0], "deleted": true})
	}
	fmt.Printf("Key %s revoked.\n", args[0])
	return nil
}
