package cli

import (
	"testing"
)

// These fail before any request is made, so no server is needed.
func TestArgumentErrors(t *testing.T) {
	t.Setenv("HVR_SERVER_URL", "http://127.0.0.1:1")

	tests := []struct {
		name string
		args []string
	}{
		{"customers show no id", []string{"customers", "show"}},
		{"customers add no name", []string{"customers", "add"}},
		{"customers remove extra", []string{"customers", "remove", "a", "b"}},
		{"customers update no flags", []string{"customers", "update", "c1"}},
		{"projects update no flags", []string{"projects", "update", "p1"}},
		{"projects event no text", []string{"projects", "event", "p1"}},
		{"bookings add no date", []string{"bookings", "add", "Jane"}},
		{"bookings add bad status", []string{"bookings", "add", "Jane", "--date", "2030-01-01", "--status", "maybe"}},
		{"bookings update no flags", []string{"bookings", "update", "b1"}},
		{"quotes remove no id", []string{"quotes", "remove"}},
		{"projects add no customer", []string{"projects", "add", "Wedding"}},
		{"projects status one arg", []string{"projects", "status", "p1"}},
		{"projects status unknown", []string{"projects", "status", "p1", "paused"}},
		{"projects note no text", []string{"projects", "note", "p1"}},
		{"inquiries read no id", []string{"inquiries", "read"}},
		{"inquiries status unknown", []string{"inquiries", "status", "i1", "spam"}},
		{"bookings status unknown", []string{"bookings", "status", "b1", "done"}},
		{"quotes price bad amount", []string{"quotes", "price", "q1", "lots"}},
		{"quotes price negative", []string{"quotes", "price", "q1", "-5"}},
		{"quotes status unknown", []string{"quotes", "status", "q1", "maybe"}},
		{"coupons add no code", []string{"coupons", "add"}},
		{"coupons redeem extra", []string{"coupons", "redeem", "A", "B"}},
		{"keys create no name", []string{"keys", "create"}},
		{"keys delete no id", []string{"keys", "delete"}},
		{"analytics positional", []string{"analytics", "today"}},
		{"serve extra", []string{"serve", "extra"}},
		{"version extra", []string{"version", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"450", 450, false},
		{"$1,250.50", 1250.5, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAmount(%q) err = %v, wantErr = %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
