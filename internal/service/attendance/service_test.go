package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: "emp-a", Name: "Asha", Role: "Developer", EmploymentType: employee.EmploymentTypeStandard},
		{ID: "emp-b", Name: "Bilal", Role: "Designer", EmploymentType: employee.EmploymentTypeStandard},
		{ID: "emp-r", Name: "Ravi", Role: "Developer", EmploymentType: employee.EmploymentTypeRemote},
		{ID: "emp-m", Name: "Owner", Role: "Founder", EmploymentType: employee.EmploymentTypeMyself},
	}
}

func newTestService(t *testing.T, now time.Time, attendanceRepo *fakeAttendanceRepo) *AttendanceServiceImpl {
	t.Helper()
	window, err := ParseMarkingWindow(DefaultMarkingWindow)
	require.NoError(t, err)

	svc := NewAttendanceService(passthroughTx{}, attendanceRepo, &fakeEmployeeRepo{employees: testEmployees()}, window, ist)
	svc.now = func() time.Time { return now }
	return svc
}

// Friday 7 June 2024, 18:00 IST.
var fridayEvening = time.Date(2024, 6, 7, 18, 0, 0, 0, ist)

func TestMark_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		req     attendance.MarkAttendanceRequest
		wantErr error
	}{
		{
			name:    "outside window",
			now:     time.Date(2024, 6, 7, 12, 0, 0, 0, ist),
			req:     attendance.MarkAttendanceRequest{EmployeeID: "emp-a", Date: "6/7/2024", Status: "Present"},
			wantErr: attendance.ErrOutsideMarkingWindow,
		},
		{
			name:    "no employee",
			now:     fridayEvening,
			req:     attendance.MarkAttendanceRequest{Date: "6/7/2024", Status: "Present"},
			wantErr: attendance.ErrEmployeeNotSelected,
		},
		{
			name:    "future date",
			now:     fridayEvening,
			req:     attendance.MarkAttendanceRequest{EmployeeID: "emp-a", Date: "6/10/2024", Status: "Present"},
			wantErr: attendance.ErrFutureDate,
		},
		{
			name:    "unknown employee",
			now:     fridayEvening,
			req:     attendance.MarkAttendanceRequest{EmployeeID: "emp-x", Date: "6/7/2024", Status: "Present"},
			wantErr: employee.ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAttendanceRepo()
			svc := newTestService(t, tt.now, repo)

			_, err := svc.Mark(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.records)
		})
	}
}

func TestMark_StoresFinalizedRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, fridayEvening, repo)

	resp, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-a",
		Date:       "2024-06-07",
		Status:     "Present",
		TimeIn:     "20:05",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusHalfPresent, resp.Status)
	assert.Equal(t, "6/7/2024", resp.Date)
	assert.Equal(t, "2024-06-07", resp.Day)
	assert.Equal(t, "Asha", resp.Name)
	assert.Equal(t, "Developer", resp.Role)
	assert.Equal(t, attendance.ApprovalNo, resp.LateArrivalApproved)
	require.Len(t, repo.records, 1)

	_, err = svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-a",
		Date:       "6/7/2024",
		Status:     "Absent",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyMarked)
	assert.Len(t, repo.records, 1)
}

func TestMark_AfterMidnightForPreviousDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, time.Date(2024, 6, 8, 1, 30, 0, 0, ist), repo)

	resp, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-b",
		Date:       "6/7/2024",
		Status:     "Present",
		TimeIn:     "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

func TestMark_WeekendBecomesOff(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, time.Date(2024, 6, 8, 18, 0, 0, 0, ist), repo)

	resp, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-a",
		Date:       "6/8/2024",
		Status:     "Present",
		TimeIn:     "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOff, resp.Status)
}

func TestUpdate_ReappliesFinalization(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, fridayEvening, repo)

	created, err := svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-a",
		Date:       "6/7/2024",
		Status:     "Present",
		TimeIn:     "17:00",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, attendance.UpdateAttendanceRequest{
		Status:              "Present",
		TimeIn:              "20:30",
		LateArrivalApproved: "No",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfPresent, updated.Status)
	assert.Equal(t, "20:30", updated.TimeIn)
	assert.Equal(t, created.Date, updated.Date)

	_, err = svc.Update(context.Background(), "missing", attendance.UpdateAttendanceRequest{Status: "Absent"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestMarkHolidayForAll(t *testing.T) {
	already := attendance.Record{ID: "existing", EmployeeID: "emp-b", Day: "2024-06-07", Date: "6/7/2024", Status: attendance.StatusAbsent}

	t.Run("partial failure keeps other writes", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		repo.failFor["emp-a"] = true
		svc := newTestService(t, fridayEvening, repo)

		resp, err := svc.MarkHolidayForAll(context.Background(), attendance.MarkHolidayRequest{Date: "6/7/2024"})
		require.NoError(t, err)

		assert.Equal(t, "2024-06-07", resp.Date)
		assert.Equal(t, 1, resp.Marked)
		assert.Equal(t, 1, resp.Failed)
		require.Len(t, resp.Results, 2)

		byID := map[string]attendance.BulkMarkResult{}
		for _, r := range resp.Results {
			byID[r.EmployeeID] = r
		}
		assert.False(t, byID["emp-a"].Marked)
		assert.NotEmpty(t, byID["emp-a"].Error)
		assert.True(t, byID["emp-b"].Marked)
		assert.Equal(t, attendance.StatusHoliday, byID["emp-b"].Status)

		require.Len(t, repo.records, 1)
		assert.Equal(t, "emp-b", repo.records[0].EmployeeID)
		assert.Equal(t, attendance.StatusHoliday, repo.records[0].Status)
	})

	t.Run("skips remote self and already marked", func(t *testing.T) {
		repo := newFakeAttendanceRepo(already)
		svc := newTestService(t, fridayEvening, repo)

		resp, err := svc.MarkHolidayForAll(context.Background(), attendance.MarkHolidayRequest{Date: "2024-06-07"})
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "emp-a", resp.Results[0].EmployeeID)
	})

	t.Run("nothing to mark", func(t *testing.T) {
		repo := newFakeAttendanceRepo(already,
			attendance.Record{ID: "existing-a", EmployeeID: "emp-a", Day: "2024-06-07", Status: attendance.StatusPresent})
		svc := newTestService(t, fridayEvening, repo)

		_, err := svc.MarkHolidayForAll(context.Background(), attendance.MarkHolidayRequest{Date: "2024-06-07"})
		assert.ErrorIs(t, err, attendance.ErrNothingToMark)
	})
}

func TestListAndUnmarked(t *testing.T) {
	repo := newFakeAttendanceRepo(
		attendance.Record{ID: "1", EmployeeID: "emp-a", Name: "Asha", Day: "2024-06-07", Status: attendance.StatusPresent},
		attendance.Record{ID: "2", EmployeeID: "emp-r", Name: "Ravi", Day: "2024-06-07", Status: attendance.StatusWorkFromHome},
		attendance.Record{ID: "3", EmployeeID: "emp-b", Name: "Bilal", Day: "2024-06-06", Status: attendance.StatusAbsent},
	)
	svc := newTestService(t, fridayEvening, repo)

	all, err := svc.List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byName, err := svc.List(context.Background(), attendance.AttendanceFilter{Date: "6/7/2024", Name: "ash"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	byStatus, err := svc.List(context.Background(), attendance.AttendanceFilter{Status: "Work From Home"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "2", byStatus[0].ID)

	unmarked, err := svc.ListUnmarked(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, unmarked, 1)
	assert.Equal(t, "emp-b", unmarked[0].EmployeeID)
}

func TestMonthlySheetAndSummary(t *testing.T) {
	repo := newFakeAttendanceRepo(
		rec("1", "2024-06-03", attendance.StatusPresent, "09:00", 1),
		rec("2", "2024-06-04", attendance.StatusPresent, "17:45", 2),
		rec("3", "2024-06-05", attendance.StatusPresent, "20:30", 3),
		rec("4", "2024-06-06", attendance.StatusAbsent, "-", 4),
		rec("5", "2024-06-07", attendance.StatusMedicalLeave, "-", 5),
	)
	for i := range repo.records {
		repo.records[i].EmployeeID = "emp-a"
	}
	svc := newTestService(t, fridayEvening, repo)

	sheet, err := svc.MonthlySheet(context.Background(), "emp-a", june2024)
	require.NoError(t, err)
	assert.Len(t, sheet.Days, 30)
	assert.Equal(t, 1, sheet.Count(attendance.StatusLateArrival))

	_, err = svc.MonthlySheet(context.Background(), "emp-x", june2024)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	summary, err := svc.MonthlySummary(context.Background(), june2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-06", summary.Month)
	assert.Equal(t, 20, summary.WorkingDays)
	// Owner is left out.
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Asha", summary.Rows[0].Name)

	row := summary.Rows[0]
	assert.Equal(t, 3, row.Present)
	assert.Equal(t, 1, row.LateArrival)
	assert.Equal(t, 1, row.HalfPresent)
	assert.Equal(t, 1, row.Absent)
	assert.Equal(t, 1, row.Leave)
	assert.Equal(t, 10, row.Off)
	assert.Equal(t, 15, row.NoRecord)
}
