package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository(t *testing.T) {
	db := newTestDatabase(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createTestEmployee(t, employees, "Asha", employee.EmploymentTypeStandard)

	created, err := repo.Create(ctx, attendance.Record{
		EmployeeID:          emp.ID,
		Name:                emp.Name,
		Role:                emp.Role,
		Date:                "6/7/2024",
		Day:                 "2024-06-07",
		Status:              attendance.StatusPresent,
		TimeIn:              "17:05",
		LateArrivalApproved: attendance.ApprovalNo,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-07", created.Day)
	assert.Equal(t, "6/7/2024", created.Date)

	exists, err := repo.ExistsForEmployeeOnDay(ctx, emp.ID, "2024-06-07")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForEmployeeOnDay(ctx, emp.ID, "2024-06-08")
	require.NoError(t, err)
	assert.False(t, exists)

	created.Status = attendance.StatusHalfPresent
	created.TimeIn = "20:30"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfPresent, updated.Status)

	_, err = repo.Create(ctx, attendance.Record{
		EmployeeID: emp.ID, Name: emp.Name, Role: emp.Role,
		Date: "6/28/2024", Day: "2024-06-28", Status: attendance.StatusAbsent,
		TimeIn: "-", LateArrivalApproved: "-",
	})
	require.NoError(t, err)

	byDay, err := repo.ListByDay(ctx, "2024-06-07")
	require.NoError(t, err)
	assert.Len(t, byDay, 1)

	month, err := repo.ListByEmployeeBetween(ctx, emp.ID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, month, 2)

	firstWeek, err := repo.ListBetween(ctx, "2024-06-01", "2024-06-07")
	require.NoError(t, err)
	assert.Len(t, firstWeek, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
