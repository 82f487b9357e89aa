package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateLayout,
			dateStr:  "2024-01-01",
			expected: "2024-01-01",
		},
		{
			name:     "Leap day",
			layout:   DateLayout,
			dateStr:  "2024-02-29",
			expected: "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{
			name:     "Plain month advance",
			date:     "2024-01-15",
			months:   1,
			expected: "2024-02-15",
		},
		{
			name:     "January 31 clamps to leap February",
			date:     "2024-01-31",
			months:   1,
			expected: "2024-02-29",
		},
		{
			name:     "January 31 clamps to non-leap February",
			date:     "2023-01-31",
			months:   1,
			expected: "2023-02-28",
		},
		{
			name:     "March 31 clamps to April 30",
			date:     "2024-03-31",
			months:   1,
			expected: "2024-04-30",
		},
		{
			name:     "Advance across year boundary",
			date:     "2024-11-30",
			months:   3,
			expected: "2025-02-28",
		},
		{
			name:     "Twelve months preserves day",
			date:     "2024-01-01",
			months:   12,
			expected: "2025-01-01",
		},
		{
			name:     "Negative offset",
			date:     "2024-03-31",
			months:   -1,
			expected: "2024-02-29",
		},
		{
			name:     "Zero offset is identity",
			date:     "2024-06-15",
			months:   0,
			expected: "2024-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(DateLayout, tt.date)
			result := AddMonths(start, tt.months)
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s",
					tt.date, tt.months, result.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestAddMonthsDoesNotMutate(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	_ = AddMonths(start, 1)
	if start.Day() != 31 {
		t.Errorf("AddMonths mutated its input: %v", start)
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Forward one month",
			date:     "2024-01-01",
			months:   1,
			expected: "2024-02-01",
		},
		{
			name:     "Clamped month-end",
			date:     "2024-05-31",
			months:   1,
			expected: "2024-06-30",
		},
		{
			name:    "Invalid date",
			date:    "not-a-date",
			months:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateLayout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error, got %s", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("OffsetDate() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}
