package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkingWindow(t *testing.T) {
	window, err := ParseMarkingWindow(DefaultMarkingWindow)
	require.NoError(t, err)
	assert.Equal(t, MarkingWindow{{From: 17, To: 24}, {From: 0, To: 3}}, window)

	invalid := []string{"", " , ", "17", "a-b", "5-3", "0-25", "-1-4", "3-3"}
	for _, raw := range invalid {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseMarkingWindow(raw)
			assert.ErrorIs(t, err, attendance.ErrInvalidMarkingWindow)
		})
	}
}

func TestMarkingWindow_Contains(t *testing.T) {
	window, err := ParseMarkingWindow(DefaultMarkingWindow)
	require.NoError(t, err)

	at := func(h, m int) time.Time { return time.Date(2024, 6, 7, h, m, 0, 0, ist) }

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"opening hour", at(17, 0), true},
		{"just before opening", at(16, 59), false},
		{"late evening", at(23, 59), true},
		{"midnight", at(0, 0), true},
		{"early morning", at(2, 59), true},
		{"closing hour", at(3, 0), false},
		{"noon", at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(tt.t))
		})
	}
}

func TestFinalizeStatus(t *testing.T) {
	const friday = "2024-06-07"
	const saturday = "2024-06-08"

	tests := []struct {
		name     string
		day      string
		status   attendance.Status
		timeIn   string
		approved string
		want     attendance.Status
	}{
		{"weekend forces off", saturday, attendance.StatusPresent, "09:00", "No", attendance.StatusOff},
		{"weekend holiday is off", saturday, attendance.StatusHoliday, "-", "-", attendance.StatusOff},
		{"holiday kept", friday, attendance.StatusHoliday, "21:00", "No", attendance.StatusHoliday},
		{"late present unapproved", friday, attendance.StatusPresent, "20:00", "No", attendance.StatusHalfPresent},
		{"late present approved", friday, attendance.StatusPresent, "20:30", "Yes", attendance.StatusPresent},
		{"present before cutoff", friday, attendance.StatusPresent, "19:59", "No", attendance.StatusPresent},
		{"present without time", friday, attendance.StatusPresent, "-", "No", attendance.StatusPresent},
		{"absent untouched", friday, attendance.StatusAbsent, "21:00", "No", attendance.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalizeStatus(tt.day, tt.status, tt.timeIn, tt.approved))
		})
	}
}
