package format

import (
	"math"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "$0"},
		{"nan renders as zero", math.NaN(), "$0"},
		{"positive inf renders as zero", math.Inf(1), "$0"},
		{"small", 100, "$100"},
		{"thousands", 15000, "$15.000"},
		{"millions", 1234567, "$1.234.567"},
		{"negative", -45000, "-$45.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCurrencyFormatterExplicitLocale(t *testing.T) {
	// Locale and symbol are parameters, not ambient state.
	usd := NewCurrencyFormatter(language.MustParse("en-US"), "US$", 2)
	if got := usd.Format(1234.5); got != "US$1,234.50" {
		t.Errorf("Format(1234.5) = %q, expected %q", got, "US$1,234.50")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
	}{
		{"2025-01-10", true},
		{"2025-01-10T12:30:00Z", true},
		{"10-01-2025", true},
		{"10/01/2025", true},
		{"", false},
		{"no es fecha", false},
		{"2025-13-45", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ParseDate(%q) ok = %v, expected %v", tt.input, ok, tt.wantOK)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		style    DateStyle
		expected string
	}{
		{"short", "2025-01-10", StyleShort, "10-01-2025"},
		{"medium", "2025-01-10", StyleMedium, "10 ene 2025"},
		{"long", "2025-01-10", StyleLong, "viernes 10 de enero de 2025"},
		{"long september", "2024-09-02", StyleLong, "lunes 02 de septiembre de 2024"},
		{"unparsable", "garbage", StyleShort, ""},
		{"empty", "", StyleLong, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.value, tt.style); got != tt.expected {
				t.Errorf("Date(%q, %s) = %q, expected %q", tt.value, tt.style, got, tt.expected)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      string
		expected int
		wantOK   bool
	}{
		{"same day", "2025-01-10", 0, true},
		{"tomorrow", "2025-01-11", 1, true},
		{"next week", "2025-01-17", 7, true},
		{"overdue", "2025-01-09", -1, true},
		{"far future", "2025-02-10", 31, true},
		{"absent", "", 0, false},
		{"unparsable", "pronto", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DaysUntilDue(tt.due, now)
			if ok != tt.wantOK {
				t.Fatalf("DaysUntilDue(%q) ok = %v, expected %v", tt.due, ok, tt.wantOK)
			}
			if ok && days != tt.expected {
				t.Errorf("DaysUntilDue(%q) = %d, expected %d", tt.due, days, tt.expected)
			}
		})
	}
}

func TestDue(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      string
		expected DueStatus
	}{
		{"no date", "", DueNoDate},
		{"unparsable", "???", DueNoDate},
		{"minus one day is overdue", "2025-01-09", DueOverdue},
		{"zero days is due soon", "2025-01-10", DueSoon},
		{"seven days is due soon", "2025-01-17", DueSoon},
		{"eight days is current", "2025-01-18", DueCurrent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Due(tt.due, now); got != tt.expected {
				t.Errorf("Due(%q) = %q, expected %q", tt.due, got, tt.expected)
			}
		})
	}
}
