package attendance

import (
	"context"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

type AttendanceService interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
	MarkHolidayForAll(ctx context.Context, req MarkHolidayRequest) (BulkMarkResponse, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	ListUnmarked(ctx context.Context, date string) ([]UnmarkedEmployee, error)
	MonthlySheet(ctx context.Context, employeeID string, month calendar.Month) (Sheet, error)
	MonthlySummary(ctx context.Context, month calendar.Month) (MonthlySummaryResponse, error)
}
