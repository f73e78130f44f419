package rut

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBody  string
		wantDigit string
		wantOK    bool
	}{
		{"plain", "12345678-5", "12345678", "5", true},
		{"dotted", "12.345.678-5", "12345678", "5", true},
		{"lowercase k", "12345678-k", "12345678", "K", true},
		{"no separator", "123456785", "12345678", "5", true},
		{"letters stripped", "rut: 12.345.678-5", "12345678", "5", true},
		{"too short", "5", "", "", false},
		{"empty", "", "", "", false},
		{"no digits", "abc", "", "", false},
		{"k in body", "12k45-6", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, digit, ok := Normalize(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, expected %v", tt.input, ok, tt.wantOK)
			}
			if body != tt.wantBody || digit != tt.wantDigit {
				t.Errorf("Normalize(%q) = (%q, %q), expected (%q, %q)", tt.input, body, digit, tt.wantBody, tt.wantDigit)
			}
		})
	}
}

func TestComputeCheckDigit(t *testing.T) {
	tests := []struct {
		body     string
		expected string
	}{
		{"12345678", "5"},
		{"7654321", "6"},
		{"11111111", "1"},
		{"22222222", "2"},
		{"12345670", "K"},
		{"5126663", "3"},
		{"1", "9"},
	}

	for _, tt := range tests {
		result := ComputeCheckDigit(tt.body)
		if result != tt.expected {
			t.Errorf("ComputeCheckDigit(%q) = %q, expected %q", tt.body, result, tt.expected)
		}
	}
}

func TestComputeCheckDigitDomain(t *testing.T) {
	// The check digit is always a decimal digit or K, whatever the body.
	bodies := []string{"0", "9", "99999999", "123", "86620855", "00000001"}
	for _, body := range bodies {
		d := ComputeCheckDigit(body)
		if len(d) != 1 || !strings.ContainsAny(d, "0123456789K") {
			t.Errorf("ComputeCheckDigit(%q) = %q, outside {0-9,K}", body, d)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"12345678-5", true},
		{"12.345.678-5", true},
		{"123456785", true},
		{"12345670-k", true},
		{"12345670-K", true},
		{"12345678-4", false},
		{"abc", false},
		{"", false},
		{"5", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.expected {
				t.Errorf("IsValid(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12345678-5", "12.345.678-5"},
		{"123456785", "12.345.678-5"},
		{"12.345.678-5", "12.345.678-5"},
		{"10000023k", "10.000.023-K"},
		{"1234", "123-4"},
		{"12", "1-2"},
		{"abc", "abc"}, // malformed input is returned verbatim
		{"", ""},
		{"5", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{"12345678-5", "1-9", "10000023-K", "76.123.456-0"}
	for _, input := range inputs {
		once := Format(input)
		twice := Format(once)
		if once != twice {
			t.Errorf("Format not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
