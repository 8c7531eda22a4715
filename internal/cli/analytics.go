package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newAnalyticsCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show daily page views and conversions",
		Long:  "Show daily site counters between --start and --end (inclusive, YYYY-MM-DD). Without flags the server returns the last 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalytics(start, end)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day (YYYY-MM-DD)")

	return cmd
}

func runAnalytics(start, end string) error {
	days, err := newAPIClient().Analytics(start, end)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(days)
	}

	var views, conversions int64
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		views += d.PageViews
		conversions += d.Conversions
		rows = append(rows, []string{
			d.Date,
			fmt.Sprint(d.PageViews),
			fmt.Sprint(d.Conversions),
			truncate(topEntries(d.Pages, 3), 40),
			truncate(topEntries(d.ConversionTypes, 3), 30),
		})
	}
	if err := printTable("days", []string{"DATE", "VIEWS", "CONV", "TOP PAGES", "CONVERSIONS"}, rows); err != nil {
		return err
	}
	if len(days) > 0 {
		fmt.Printf("Page views: %d, conversions: %d\n", views, conversions)
	}
	return nil
}

// topEntries renders the n largest counters as "name=count", largest
// first with ties broken by name.
func topEntries(counts map[string]int64, n int) string {
	type entry struct {
		name  string
		count int64
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s=%d", e.name, e.count)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
