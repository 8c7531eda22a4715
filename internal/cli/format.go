package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes rows under header as aligned columns, followed by a
// total line naming noun. Empty input prints a "No <noun> found." line.
func printTable(noun string, header []string, rows [][]string) error {
	if len(rows) == 0 {
		fmt.Printf("No %s found.\n", noun)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", len(h))
	}
	for _, line := range append([][]string{header, sep}, rows...) {
		if _, err := fmt.Fprintln(w, strings.Join(line, "\t")); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d %s\n", len(rows), noun)
	return nil
}

// printFields prints label/value pairs as an aligned block, skipping
// empty values.
func printFields(title string, fields [][2]string) {
	fmt.Println(title)
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Printf("  %-12s %s\n", f[0]+":", f[1])
	}
}

// formatMoney formats a dollar amount with thousands separators and cents.
func formatMoney(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := "$" + strings.Join(parts, ",") + "." + cents
	if neg {
		out = "-" + out
	}
	return out
}

// formatTime renders t in local time, or "-" for a zero or nil time.
func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
