package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, name, role, date, day::text, status, time_in, late_arrival_approved, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Name, &rec.Role, &rec.Date, &rec.Day,
		&rec.Status, &rec.TimeIn, &rec.LateArrivalApproved,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (a *attendanceRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	day, err := calendar.ParseDay(record.Day)
	if err != nil {
		return attendance.Record{}, err
	}

	query := `
		INSERT INTO attendances (employee_id, name, role, date, day, status, time_in, late_arrival_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID, record.Name, record.Role, record.Date, day,
		record.Status, record.TimeIn, record.LateArrivalApproved,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository. Employee, name, role and
// date never change after marking.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $1, time_in = $2, late_arrival_approved = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		record.Status, record.TimeIn, record.LateArrivalApproved, record.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ExistsForEmployeeOnDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsForEmployeeOnDay(ctx context.Context, employeeID string, day string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	d, err := calendar.ParseDay(day)
	if err != nil {
		return false, err
	}

	var exists bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE employee_id = $1 AND day = $2)`,
		employeeID, d,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

// ListByDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDay(ctx context.Context, day string) ([]attendance.Record, error) {
	d, err := calendar.ParseDay(day)
	if err != nil {
		return nil, err
	}
	return a.queryRecords(ctx,
		`SELECT `+attendanceColumns+` FROM attendances WHERE day = $1 ORDER BY name ASC, created_at ASC`, d)
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to string) ([]attendance.Record, error) {
	fromDay, toDay, err := parseDayRange(from, to)
	if err != nil {
		return nil, err
	}
	return a.queryRecords(ctx,
		`SELECT `+attendanceColumns+` FROM attendances
		WHERE employee_id = $1 AND day BETWEEN $2 AND $3
		ORDER BY created_at ASC`, employeeID, fromDay, toDay)
}

// ListBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListBetween(ctx context.Context, from, to string) ([]attendance.Record, error) {
	fromDay, toDay, err := parseDayRange(from, to)
	if err != nil {
		return nil, err
	}
	return a.queryRecords(ctx,
		`SELECT `+attendanceColumns+` FROM attendances
		WHERE day BETWEEN $1 AND $2
		ORDER BY employee_id, created_at ASC`, fromDay, toDay)
}

func parseDayRange(from, to string) (fromDay, toDay interface{}, err error) {
	f, err := calendar.ParseDay(from)
	if err != nil {
		return nil, nil, err
	}
	t, err := calendar.ParseDay(to)
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}
