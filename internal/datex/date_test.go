package datex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"plain date", time.Date(1995, 8, 31, 0, 0, 0, 0, time.UTC), "1995-08-31"},
		{"time of day dropped", time.Date(2019, 3, 12, 23, 59, 58, 0, time.UTC), "2019-03-12"},
		{"single digit month and day", time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC), "2001-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "31-08-1995", "1995/08/31", "1995-13-01", "not a date"} {
		_, err := Parse(s)
		assert.Error(t, err, "input %q", s)
	}
}

// Formatting a date and parsing it back must yield the same day, with no
// timezone drift.
func TestRoundTrip(t *testing.T) {
	days := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1995, 8, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		got, err := Parse(Format(d))
		require.NoError(t, err)
		assert.True(t, got.Equal(d), "want %v, got %v", d, got)
	}
}
