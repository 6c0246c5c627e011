package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if filter.MarkableOnly && !e.Markable() {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, e)
	return e, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, id string, _ employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	records []attendance.Record
	failFor map[string]bool
	seq     int
}

func newFakeAttendanceRepo(records ...attendance.Record) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: records, failFor: map[string]bool{}}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	if f.failFor[r.EmployeeID] {
		return attendance.Record{}, errors.New("insert failed")
	}
	f.seq++
	r.ID = fmt.Sprintf("rec-%d", f.seq)
	r.CreatedAt = time.Date(2024, 6, 1, 0, 0, f.seq, 0, time.UTC)
	r.UpdatedAt = r.CreatedAt
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, r attendance.Record) (attendance.Record, error) {
	for i := range f.records {
		if f.records[i].ID == r.ID {
			f.records[i] = r
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ExistsForEmployeeOnDay(_ context.Context, employeeID, day string) (bool, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Day == day {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) ListByDay(_ context.Context, day string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.Day == day {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeBetween(_ context.Context, employeeID, from, to string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Day >= from && r.Day <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListBetween(_ context.Context, from, to string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.Day >= from && r.Day <= to {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.Compare(out[i].Day, out[j].Day) < 0 })
	return out, nil
}
