package upstream

import "testing"

func TestDateRangeQuery(t *testing.T) {
	cases := []struct {
		name string
		rng  DateRange
		want string
	}{
		{"all time", AllTime(), ""},
		{"last 7 days", LastSevenDays(), "?range=7"},
		{"this month", ThisMonth(), "?range=month"},
		{"custom", Custom("2025-01-01", "2025-01-31"), "?from=2025-01-01&to=2025-01-31"},
		{"custom missing to", Custom("2025-01-01", ""), ""},
		{"custom missing from", Custom("", "2025-01-31"), ""},
		{"custom missing both", Custom("", ""), ""},
	}
	for _, tc := range cases {
		if got := tc.rng.Query(); got != tc.want {
			t.Fatalf("%s: Query() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDateRangeLabel(t *testing.T) {
	if got := LastSevenDays().Label(); got != "Last 7 days" {
		t.Fatalf("Label() = %q", got)
	}
	if got := Custom("2025-01-01", "2025-01-31").Label(); got != "2025-01-01 to 2025-01-31" {
		t.Fatalf("Label() = %q", got)
	}
	if got := Custom("2025-01-01", "").Label(); got != "All time" {
		t.Fatalf("single-bound custom Label() = %q, want All time", got)
	}
}
