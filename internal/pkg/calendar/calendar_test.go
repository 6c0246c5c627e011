package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateIn(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"us short", "6/7/2024", "2024-06-07"},
		{"us padded", "06/07/2024", "2024-06-07"},
		{"iso day", "2024-06-07", "2024-06-07"},
		{"slashed iso", "2024/06/07", "2024-06-07"},
		{"long hand", "Jun 7, 2024", "2024-06-07"},
		{"timestamp without offset", "2024-06-07 21:15:00", "2024-06-07"},
		{"utc evening becomes next local day", "2024-06-07T20:00:00Z", "2024-06-08"},
		{"offset timestamp", "2024-06-07T23:59:00+05:30", "2024-06-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDateIn(tt.input, kolkata)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDateIn_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "tomorrow", "13/1/2024", "2/30/2024", "2024-13-01"} {
		_, err := NormalizeDateIn(input, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", input)
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	for _, input := range []string{"1/31/2024", "2024-02-29", "Mar 3, 2024", "2024-12-31T10:00:00"} {
		once, err := NormalizeDateIn(input, time.UTC)
		require.NoError(t, err)
		twice, err := NormalizeDateIn(once, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"-", 0},
		{"garbage", 0},
		{"25:00", 0},
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"20:05", 1205},
		{"20:05:59", 1205},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TimeToMinutes(c.input), "input %q", c.input)
	}
}

func TestHasTime(t *testing.T) {
	assert.True(t, HasTime("09:15"))
	assert.False(t, HasTime("-"))
	assert.False(t, HasTime(""))
	assert.False(t, HasTime("9am"))
}

func TestIsWeekendDay(t *testing.T) {
	assert.True(t, IsWeekendDay("2024-06-08"))  // Saturday
	assert.True(t, IsWeekendDay("2024-06-09"))  // Sunday
	assert.False(t, IsWeekendDay("2024-06-10")) // Monday
	assert.False(t, IsWeekendDay("not a day"))
}

func TestEnumerateDays(t *testing.T) {
	days := EnumerateDays(2024, time.February)
	require.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0])
	assert.Equal(t, "2024-02-29", days[28])

	assert.Len(t, EnumerateDays(2023, time.February), 28)
	assert.Len(t, EnumerateDays(2024, time.June), 30)
	assert.Len(t, EnumerateDays(2024, time.July), 31)
}

func TestMonth(t *testing.T) {
	m, err := ParseMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", m.String())
	assert.Equal(t, 30, m.Days())
	assert.Equal(t, "2024-06-01", m.FirstDay())
	assert.Equal(t, "2024-06-30", m.LastDay())
	assert.True(t, m.Contains("2024-06-15"))
	assert.False(t, m.Contains("2024-07-01"))
	assert.Equal(t, 20, WorkingDays(m))

	_, err = ParseMonth("June 2024")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestDaysBetween(t *testing.T) {
	fri, _ := ParseDay("2024-06-07")
	mon, _ := ParseDay("2024-06-10")
	assert.Equal(t, 3, DaysBetween(fri, mon))
	assert.Equal(t, -3, DaysBetween(mon, fri))
}

func TestFormatUSDay(t *testing.T) {
	got, err := FormatUSDay("2024-06-07")
	require.NoError(t, err)
	assert.Equal(t, "6/7/2024", got)
}
