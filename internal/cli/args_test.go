package cli

import (
	"errors"
	"testing"
	"time"

	"budgman/internal/core"
)

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"blank is now", "  ", now, false},
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), false},
		{"date and minute", "2024-03-01 08:15", time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local), false},
		{"rfc3339", "2024-03-01T08:15:00Z", time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC), false},
		{"garbage", "yesterday", time.Time{}, true},
		{"invalid day", "2024-02-30", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTime(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"500", 50000, false},
		{"12,34", 1234, false},
		{"0.005", 1, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, core.ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.Cents != tt.want {
			t.Errorf("ParseAmount(%q) = %d cents, want %d", tt.input, got.Cents, tt.want)
		}
	}
}

func TestParseName(t *testing.T) {
	if got := ParseName("  Groceries \n"); got != "Groceries" {
		t.Errorf("ParseName() = %q", got)
	}
}
