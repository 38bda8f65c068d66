package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateParser_Parse(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso", "2024-03-15", day(2024, time.March, 15), true},
		{"iso with spaces", "  2024-03-15 ", day(2024, time.March, 15), true},
		{"rfc3339 truncated", "2024-03-15T22:30:00Z", day(2024, time.March, 15), true},
		{"iso with time", "2024-03-15 08:15:00", day(2024, time.March, 15), true},
		{"month first", "03/04/2024", day(2024, time.March, 4), true},
		{"month first short", "3/4/2024", day(2024, time.March, 4), true},
		{"day first fallback", "25/12/2024", day(2024, time.December, 25), true},
		{"slash iso", "2024/03/15", day(2024, time.March, 15), true},
		{"dotted", "2024.03.15", day(2024, time.March, 15), true},
		{"dash month name", "15-Mar-2024", day(2024, time.March, 15), true},
		{"month name", "Mar 5, 2024", day(2024, time.March, 5), true},
		{"long month name", "March 5, 2024", day(2024, time.March, 5), true},
		{"day month name", "5 March 2024", day(2024, time.March, 5), true},
		{"compact", "20240315", day(2024, time.March, 15), true},
		{"not applicable", "N/A", time.Time{}, false},
		{"blank", "", time.Time{}, false},
		{"text", "yesterday", time.Time{}, false},
		{"bare year", "2024", time.Time{}, false},
		{"bare number", "45292", time.Time{}, false},
	}

	p := NewDateParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestWorkbookDateParser_Serials(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"excel serial", "45292", day(2024, time.January, 1), true},
		{"excel serial with time", "45292.75", day(2024, time.January, 1), true},
		{"text date still parses", "2024-03-15", day(2024, time.March, 15), true},
		{"zero serial", "0", time.Time{}, false},
		{"negative serial", "-3", time.Time{}, false},
		{"beyond 9999-12-31", "2958466", time.Time{}, false},
	}

	p := NewWorkbookDateParser(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDateParser_1904System(t *testing.T) {
	got1900, ok := NewWorkbookDateParser(false).Parse("45292")
	assert.True(t, ok)
	got1904, ok := NewWorkbookDateParser(true).Parse("45292")
	assert.True(t, ok)

	assert.Equal(t, 2024, got1900.Year())
	assert.Equal(t, 2028, got1904.Year())
}
