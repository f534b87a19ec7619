package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEmission(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // dd/mm/yyyy, empty means "not recognized"
	}{
		{name: "rfc3339", in: "2025-09-12T10:30:00-03:00", want: "12/09/2025"},
		{name: "timestamp no zone", in: "2025-09-12T10:30:00", want: "12/09/2025"},
		{name: "timestamp space separator", in: "2025-09-12 10:30:00", want: "12/09/2025"},
		{name: "plain iso date", in: "2025-09-12", want: "12/09/2025"},
		{name: "display form", in: "12/09/2025", want: "12/09/2025"},
		{name: "garbage", in: "setembro de 2025", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEmission(tt.in)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestParseCompetencia(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "year-month", in: "2025-09", want: "01/09/2025"},
		{name: "full date maps to first day", in: "2025-09-15", want: "01/09/2025"},
		{name: "month slash year", in: "09/2025", want: "01/09/2025"},
		{name: "compact", in: "202509", want: "01/09/2025"},
		{name: "garbage", in: "Q3 2025", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompetencia(tt.in)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestParseDisplayDate(t *testing.T) {
	got, ok := ParseDisplayDate("30/09/2025")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDisplayDate("30-09-2025")
	assert.True(t, ok)
	assert.Equal(t, time.September, got.Month())

	_, ok = ParseDisplayDate("2025-09-30")
	assert.False(t, ok)

	_, ok = ParseDisplayDate("31/02/2025")
	assert.False(t, ok)
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{name: "september", in: time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC), want: 30},
		{name: "december", in: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), want: 31},
		{name: "february common year", in: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), want: 28},
		{name: "february leap year", in: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), want: 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastDayOfMonth(tt.in)
			assert.Equal(t, tt.want, got.Day())
			assert.Equal(t, tt.in.Month(), got.Month())
			assert.Equal(t, tt.in.Year(), got.Year())
		})
	}
}

func TestDefaultDueDate(t *testing.T) {
	today := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "30/09/2025", FormatDate(DefaultDueDate(today)))

	january := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "31/12/2024", FormatDate(DefaultDueDate(january)))
}
