package attendance

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attachment"
	attendanceerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attendance/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
)

type fakeRepo struct {
	withTxFn                 func(tx *sql.Tx) Repository
	createFn                 func(ctx context.Context, a *Attendance) error
	findByIDFn               func(ctx context.Context, id string) (*Attendance, error)
	findAllFn                func(ctx context.Context) ([]Attendance, error)
	findAllByEmployeeFn      func(ctx context.Context, employeeID string) ([]Attendance, error)
	closeFn                  func(ctx context.Context, id string, checkOutAt time.Time, workReport string, attachment *string) (int64, error)
	countAllFn               func(ctx context.Context) (int64, error)
	countInRangeFn           func(ctx context.Context, start, end time.Time) (int64, error)
	countByEmployeeInRangeFn func(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Attendance, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) Close(ctx context.Context, id string, checkOutAt time.Time, workReport string, att *string) (int64, error) {
	return f.closeFn(ctx, id, checkOutAt, workReport, att)
}
func (f *fakeRepo) CountAll(ctx context.Context) (int64, error) { return f.countAllFn(ctx) }
func (f *fakeRepo) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return f.countInRangeFn(ctx, start, end)
}
func (f *fakeRepo) CountByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	return f.countByEmployeeInRangeFn(ctx, employeeID, start, end)
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
	byCode    map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	if emp, ok := f.employees[id]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByCode(_ context.Context, code string) (*employee.Employee, error) {
	if emp, ok := f.byCode[code]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeStore struct {
	ref     string
	err     error
	removed []string
}

func (f *fakeStore) Store(_ context.Context, _ *multipart.FileHeader) (string, error) {
	return f.ref, f.err
}

func (f *fakeStore) Remove(_ context.Context, ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

func newTestEmployee() *employee.Employee {
	return &employee.Employee{
		ID:       uuid.New(),
		EmpCode:  "EMP-001",
		FullName: "Priya Raman",
		Email:    "priya@corp.example",
		Role:     employee.RoleEmployee,
		Status:   employee.StatusActive,
	}
}

func newTestService(t *testing.T, repo Repository, empRepo employee.Repository, store attachment.Store) (*service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, empRepo, store, nil, time.UTC).(*service)
	return svc, mock, func() { db.Close() }
}

func TestService_CheckInAndCheckOut(t *testing.T) {
	emp := newTestEmployee()
	empRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{emp.ID.String(): emp}}

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByIDFn = func(ctx context.Context, id string) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := saved
		return &cp, nil
	}
	repo.closeFn = func(ctx context.Context, id string, checkOutAt time.Time, workReport string, att *string) (int64, error) {
		if saved.CheckOutAt != nil {
			return 0, nil
		}
		saved.CheckOutAt = &checkOutAt
		saved.WorkReport = &workReport
		saved.Attachment = att
		return 1, nil
	}

	svc, mock, done := newTestService(t, repo, empRepo, &fakeStore{})
	defer done()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, emp.ID.String())
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Equal(t, emp.EmpCode, inResp.EmpCode)
	assert.Nil(t, inResp.CheckOutAt)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.CheckOut(ctx, saved.ID.String(), CheckOutRequest{
		CheckOutTime: time.Now().UTC().Format(time.RFC3339),
		WorkReport:   "closed two tickets",
	}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, outResp.CheckOutAt)
	assert.NotNil(t, outResp.WorkReport)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_UnknownEmployee(t *testing.T) {
	repo := &fakeRepo{}
	empRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{}}

	svc, _, done := newTestService(t, repo, empRepo, &fakeStore{})
	defer done()

	_, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.Error(t, err)
}

func TestService_CheckOut_Validation(t *testing.T) {
	repo := &fakeRepo{}
	empRepo := &fakeEmployeeRepo{}
	svc, _, done := newTestService(t, repo, empRepo, &fakeStore{})
	defer done()
	ctx := context.Background()

	_, err := svc.CheckOut(ctx, uuid.New().String(), CheckOutRequest{WorkReport: "done"}, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrMissingCheckOutTime)

	_, err = svc.CheckOut(ctx, uuid.New().String(), CheckOutRequest{CheckOutTime: time.Now().Format(time.RFC3339)}, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrMissingWorkReport)

	_, err = svc.CheckOut(ctx, uuid.New().String(), CheckOutRequest{CheckOutTime: "31-12-2025 18:00", WorkReport: "done"}, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCheckOutTime)
}

func TestService_CheckOut_AlreadyClosed(t *testing.T) {
	closedAt := time.Now().UTC()
	report := "already reported"
	row := Attendance{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		CheckInAt:  closedAt.Add(-8 * time.Hour),
		CheckOutAt: &closedAt,
		WorkReport: &report,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Attendance, error) {
		cp := row
		return &cp, nil
	}

	svc, _, done := newTestService(t, repo, &fakeEmployeeRepo{}, &fakeStore{})
	defer done()

	_, err := svc.CheckOut(context.Background(), row.ID.String(), CheckOutRequest{
		CheckOutTime: time.Now().Format(time.RFC3339),
		WorkReport:   "should not overwrite",
	}, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrRecordAlreadyClosed)
	assert.Equal(t, "already reported", *row.WorkReport)
}

func TestService_CheckOut_LosesRace(t *testing.T) {
	row := Attendance{ID: uuid.New(), EmployeeID: uuid.New(), CheckInAt: time.Now().UTC()}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Attendance, error) {
		cp := row
		return &cp, nil
	}
	// guarded update reports zero rows: another check-out won
	repo.closeFn = func(ctx context.Context, id string, checkOutAt time.Time, workReport string, att *string) (int64, error) {
		return 0, nil
	}

	svc, mock, done := newTestService(t, repo, &fakeEmployeeRepo{}, &fakeStore{})
	defer done()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), row.ID.String(), CheckOutRequest{
		CheckOutTime: time.Now().Format(time.RFC3339),
		WorkReport:   "late report",
	}, nil)
	assert.ErrorIs(t, err, attendanceerrors.ErrRecordAlreadyClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ListForViewer_Scoping(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	all := []Attendance{
		{ID: uuid.New(), EmployeeID: mine, CheckInAt: time.Now()},
		{ID: uuid.New(), EmployeeID: other, CheckInAt: time.Now()},
		{ID: uuid.New(), EmployeeID: other, CheckInAt: time.Now()},
	}

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Attendance, error) { return all, nil }
	repo.findAllByEmployeeFn = func(ctx context.Context, employeeID string) ([]Attendance, error) {
		var out []Attendance
		for _, a := range all {
			if a.EmployeeID.String() == employeeID {
				out = append(out, a)
			}
		}
		return out, nil
	}

	svc, _, done := newTestService(t, repo, &fakeEmployeeRepo{}, &fakeStore{})
	defer done()
	ctx := context.Background()

	rows, err := svc.ListForViewer(ctx, mine.String(), employee.RoleSuperadmin)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = svc.ListForViewer(ctx, mine.String(), employee.RoleEmployee)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, mine.String(), rows[0].EmployeeID)
}

func TestService_CountToday_BoundaryInclusive(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &fakeRepo{}
	repo.countInRangeFn = func(ctx context.Context, start, end time.Time) (int64, error) {
		gotStart, gotEnd = start, end
		return 4, nil
	}

	svc, _, done := newTestService(t, repo, &fakeEmployeeRepo{}, &fakeStore{})
	defer done()
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)
	}

	resp, err := svc.CountToday(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), resp.PresentToday)
	assert.Equal(t, "2025-03-10", resp.Date)

	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, 10, gotEnd.Day())
	assert.Equal(t, 23, gotEnd.Hour())
	assert.Equal(t, 59, gotEnd.Minute())
}

func TestService_MonthlyCountFor(t *testing.T) {
	emp := newTestEmployee()
	empRepo := &fakeEmployeeRepo{byCode: map[string]*employee.Employee{emp.EmpCode: emp}}

	var gotStart, gotEnd time.Time
	repo := &fakeRepo{}
	repo.countByEmployeeInRangeFn = func(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
		assert.Equal(t, emp.ID.String(), employeeID)
		gotStart, gotEnd = start, end
		return 19, nil
	}

	svc, _, done := newTestService(t, repo, empRepo, &fakeStore{})
	defer done()
	svc.now = func() time.Time {
		return time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC)
	}

	resp, err := svc.MonthlyCountFor(context.Background(), emp.EmpCode)
	assert.NoError(t, err)
	assert.Equal(t, int64(19), resp.Total)
	assert.Equal(t, "February", resp.Month)
	assert.Equal(t, 2024, resp.Year)

	// leap February covers the 1st through the 29th inclusive
	assert.Equal(t, 1, gotStart.Day())
	assert.Equal(t, 29, gotEnd.Day())

	_, err = svc.MonthlyCountFor(context.Background(), "NO-SUCH-CODE")
	assert.Error(t, err)
}

// A racer that stored its attachment but then lost the guarded close
// must remove the file again.
func TestService_CheckOut_LostRaceDiscardsAttachment(t *testing.T) {
	row := Attendance{ID: uuid.New(), EmployeeID: uuid.New(), CheckInAt: time.Now().UTC()}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Attendance, error) {
		cp := row
		return &cp, nil
	}
	repo.closeFn = func(ctx context.Context, id string, checkOutAt time.Time, workReport string, att *string) (int64, error) {
		return 0, nil
	}

	store := &fakeStore{ref: "statics/proof.png"}
	svc, mock, done := newTestService(t, repo, &fakeEmployeeRepo{}, store)
	defer done()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), row.ID.String(), CheckOutRequest{
		CheckOutTime: time.Now().Format(time.RFC3339),
		WorkReport:   "late report",
	}, &multipart.FileHeader{Filename: "proof.png"})
	assert.ErrorIs(t, err, attendanceerrors.ErrRecordAlreadyClosed)
	assert.Equal(t, []string{"statics/proof.png"}, store.removed)
}

func TestService_CheckOut_AttachmentFailureKeepsRecordOpen(t *testing.T) {
	row := Attendance{ID: uuid.New(), EmployeeID: uuid.New(), CheckInAt: time.Now().UTC()}

	closeCalled := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, id string) (*Attendance, error) {
		cp := row
		return &cp, nil
	}
	repo.closeFn = func(ctx context.Context, id string, checkOutAt time.Time, workReport string, att *string) (int64, error) {
		closeCalled = true
		return 1, nil
	}

	store := &fakeStore{err: errors.New("disk full")}
	svc, _, done := newTestService(t, repo, &fakeEmployeeRepo{}, store)
	defer done()

	_, err := svc.CheckOut(context.Background(), row.ID.String(), CheckOutRequest{
		CheckOutTime: time.Now().Format(time.RFC3339),
		WorkReport:   "report",
	}, &multipart.FileHeader{Filename: "proof.png"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAttachmentUpload)
	assert.False(t, closeCalled)
}
