package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and auth status",
		Long:  "Checks that the server is up and that the stored API key is accepted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

// runStatus reports problems on stdout rather than failing, so it is
// safe to run before logging in.
func runStatus() error {
	serverURL := getServerURL()
	apiKey := getAPIKey()

	fmt.Printf("Server:  %s\n", serverURL)

	httpClient := &http.Client{Timeout: 5 * time.Second}
	health, err := httpClient.Get(serverURL + "/health")
	if err != nil {
		fmt.Printf("Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	closeBody(health)
	if health.StatusCode != http.StatusOK {
		fmt.Printf("Status:  ✗ server unhealthy (%d)\n", health.StatusCode)
		return nil
	}

	if apiKey == "" {
		fmt.Println("API Key: not configured")
		fmt.Println("\nRun 'hvr login' to authenticate.")
		return nil
	}

	prefix := apiKey
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	fmt.Printf("API Key: %s…\n", prefix)

	req, err := http.NewRequest(http.MethodGet, serverURL+"/api/coupons", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		fmt.Printf("Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Println("Status:  ✓ connected and authenticated")
	case http.StatusUnauthorized:
		fmt.Println("Status:  ✗ invalid API key")
		fmt.Println("\nRun 'hvr login' to re-authenticate.")
	case http.StatusTooManyRequests:
		fmt.Println("Status:  ✗ rate limited after failed attempts, try again in a minute")
	default:
		fmt.Printf("Status:  ✗ unexpected response (%d)\n", resp.StatusCode)
	}

	return nil
}

func closeBody(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		fmt.Printf("warning: closing response body: %v\n", cerr)
	}
}
