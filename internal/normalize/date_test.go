package normalize

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "weekday and comma", in: "Saturday, 18 January 2025", want: "2025-01-18"},
		{name: "plain", in: "18 January 2025", want: "2025-01-18"},
		{name: "abbreviated month", in: "18 Jan 2025", want: "2025-01-18"},
		{name: "ordinal suffix", in: "1st June 2025", want: "2025-06-01"},
		{name: "all ordinals", in: "2nd June 2025", want: "2025-06-02"},
		{name: "two-digit year", in: "18 Jan 25", want: "2025-01-18"},
		{name: "dual-day range keeps first day", in: "16/17 May 2025", want: "2025-05-16"},
		{name: "weekend marker", in: "Weekend 16/17 May 2025", want: "2025-05-16"},
		{name: "numeric with slashes", in: "18/1/2025", want: "2025-01-18"},
		{name: "numeric with dots", in: "18.1.2025", want: "2025-01-18"},
		{name: "numeric with dashes", in: "18-1-2025", want: "2025-01-18"},
		{name: "iso order", in: "2025 1 18", want: "2025-01-18"},
		{name: "extra whitespace", in: "  18   January   2025  ", want: "2025-01-18"},
		{name: "mixed case", in: "18 JANUARY 2025", want: "2025-01-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if err != nil {
				t.Fatalf("NormalizeDate(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDateFailures(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date at all", "January", "32 January 2025"} {
		if got, err := NormalizeDate(in); err == nil {
			t.Errorf("NormalizeDate(%q) = %q, want error", in, got)
		}
	}
}
