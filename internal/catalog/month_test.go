package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestWindowFor(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  []Month
	}{
		{"early in month carries previous", date(2024, time.March, 5), []Month{Fevrier, Mars}},
		{"day 10 still carries previous", date(2024, time.March, 10), []Month{Fevrier, Mars}},
		{"day 11 is current only", date(2024, time.March, 11), []Month{Mars}},
		{"mid month is current only", date(2024, time.March, 15), []Month{Mars}},
		{"day 20 is current only", date(2024, time.March, 20), []Month{Mars}},
		{"day 21 looks ahead", date(2024, time.March, 21), []Month{Mars, Avril}},
		{"late in month looks ahead", date(2024, time.March, 25), []Month{Mars, Avril}},
		{"late december wraps to january", date(2024, time.December, 25), []Month{Decembre, Janvier}},
		{"early january wraps to december", date(2025, time.January, 5), []Month{Decembre, Janvier}},
		{"last day of month looks ahead", date(2024, time.February, 29), []Month{Fevrier, Mars}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowFor(tt.today))
		})
	}
}

func TestMonthWraparound(t *testing.T) {
	assert.Equal(t, Janvier, Decembre.Next())
	assert.Equal(t, Decembre, Janvier.Prev())
	assert.Equal(t, Mars, Fevrier.Next())
	assert.Equal(t, Fevrier, Mars.Prev())
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		label string
		want  Month
		ok    bool
	}{
		{"Janvier", Janvier, true},
		{"Février", Fevrier, true},
		{"Août", Aout, true},
		{"Décembre", Decembre, true},
		// Matching is exact and case-sensitive, no coercion.
		{"janvier", 0, false},
		{"JANVIER", 0, false},
		{"February", 0, false},
		{"Fevrier", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseMonth(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "Janvier", Janvier.String())
	assert.Equal(t, "Décembre", Decembre.String())
	assert.Equal(t, "", Month(0).String())
	assert.Equal(t, "", Month(13).String())
}
