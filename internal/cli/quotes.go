package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/quote"
)

func newQuotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quotes",
		Aliases: []string{"quote"},
		Short:   "Price and track quote requests",
	}

	var pending bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List quote requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuotesList(pending)
		},
	}
	list.Flags().BoolVar(&pending, "pending", false, "only quotes not yet sent")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a quote request",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuotesShow(args[0])
			},
		},
		&cobra.Command{
			Use:   "price <id> <amount>",
			Short: "Set the quoted amount",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuotesPrice(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "status <id> <pending|sent|accepted|declined>",
			Short: "Set a quote's status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuotesStatus(args[0], args[1])
			},
		},
		newRemoveCmd("Quote", "Remove a quote", (*client.Client).DeleteQuote),
	)

	return cmd
}

func runQuotesList(pending bool) error {
	quotes, err := newAPIClient().ListQuotes(pending)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(quotes)
	}

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		amount := "-"
		if q.Amount > 0 {
			amount = formatMoney(q.Amount)
		}
		rows = append(rows, []string{
			q.ID,
			formatTime(&q.Timestamp),
			truncate(q.Name, 24),
			truncate(q.Service, 24),
			amount,
			string(q.Status),
		})
	}
	return printTable("quotes", []string{"ID", "RECEIVED", "NAME", "SERVICE", "AMOUNT", "STATUS"}, rows)
}

func runQuotesShow(id string) error {
	q, err := newAPIClient().GetQuote(id)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(q)
	}

	amount := ""
	if q.Amount > 0 {
		amount = formatMoney(q.Amount)
	}
	printFields("Quote "+q.ID, [][2]string{
		{"Name", q.Name},
		{"Email", q.Email},
		{"Phone", q.Phone},
		{"Service", q.Service},
		{"Event", q.EventDate},
		{"Budget", q.Budget},
		{"Amount", amount},
		{"Status", string(q.Status)},
		{"Received", formatTime(&q.Timestamp)},
	})
	if q.Details != "" {
		fmt.Printf("\n%s\n", q.Details)
	}
	return nil
}

func runQuotesPrice(id, raw string) error {
	amount, err := parseAmount(raw)
	if err != nil {
		return err
	}
	if err := newAPIClient().SetQuoteAmount(id, amount); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]any{"id": id, "amount": amount})
	}
	fmt.Printf("Quote %s priced at %s.\n", id, formatMoney(amount))
	return nil
}

func runQuotesStatus(id, status string) error {
	if !quote.Status(status).IsValid() {
		return fmt.Errorf("invalid quote status %q", status)
	}
	if err := newAPIClient().UpdateQuoteStatus(id, status); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id, "status": status})
	}
	fmt.Printf("Quote %s is now %s.\n", id, status)
	return nil
}

// parseAmount reads a non-negative money amount such as "1,250" or "$99.50".
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.ReplaceAll(s, ",", ""), "$"), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount: %s", s)
	}
	return v, nil
}
