package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attachment"
	attendanceerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attendance/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	employeeerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/scope"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/timeutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	countTotalKey      = "attendance:count:total"
	countTodayPrefix   = "attendance:count:today:"
	counterCacheExpiry = time.Minute
)

type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, recordID string, req CheckOutRequest, file *multipart.FileHeader) (AttendanceResponse, error)
	ListForViewer(ctx context.Context, viewerID, viewerRole string) ([]AttendanceResponse, error)
	CountAll(ctx context.Context) (CountResponse, error)
	CountToday(ctx context.Context) (TodayCountResponse, error)
	MonthlyCountFor(ctx context.Context, empCode string) (MonthlyCountResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	attachments  attachment.Store
	rdb          *redis.Client
	sf           *singleflight.Group
	loc          *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	attachments attachment.Store,
	rdb *redis.Client,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = timeutil.ReportingZone()
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		attachments:  attachments,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		loc:          loc,
		logger:       l,
		now:          time.Now,
	}
}

// CheckIn opens a new attendance record. The employee must resolve in
// the directory, but check-in is not status-gated: an employee marked
// On Leave can still create a record, matching long-standing behavior.
func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		EmpCode:      emp.EmpCode,
		EmployeeName: emp.FullName,
		CheckInAt:    s.now().UTC(),
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.invalidateCounters(ctx)
	s.logger.Info("check-in recorded",
		zap.String("attendance_id", row.ID.String()),
		zap.String("emp_code", row.EmpCode),
	)
	return mapToResponse(*row), nil
}

// CheckOut closes an open record. The work report and check-out time
// are both mandatory; attachment storage is all-or-nothing with the
// close itself. A concurrent double check-out loses on the guarded
// update and surfaces as RecordAlreadyClosed.
func (s *service) CheckOut(ctx context.Context, recordID string, req CheckOutRequest, file *multipart.FileHeader) (AttendanceResponse, error) {
	if req.CheckOutTime == "" {
		return AttendanceResponse{}, attendanceerrors.ErrMissingCheckOutTime
	}
	if req.WorkReport == "" {
		return AttendanceResponse{}, attendanceerrors.ErrMissingWorkReport
	}
	checkOutAt, err := time.Parse(time.RFC3339, req.CheckOutTime)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCheckOutTime
	}

	row, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return AttendanceResponse{}, err
	}
	if !row.IsOpen() {
		return AttendanceResponse{}, attendanceerrors.ErrRecordAlreadyClosed
	}

	var attachmentRef *string
	if file != nil {
		ref, err := s.attachments.Store(ctx, file)
		if err != nil {
			s.logger.Error("check-out attachment upload failed", zap.Error(err))
			return AttendanceResponse{}, attendanceerrors.ErrAttachmentUpload
		}
		attachmentRef = &ref
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.Close(ctx, recordID, checkOutAt.UTC(), req.WorkReport, attachmentRef)
	if err != nil {
		s.logger.Error("check-out update failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if affected == 0 {
		// lost the race: someone else closed it between the read
		// above and this update
		s.discardAttachment(ctx, attachmentRef)
		return AttendanceResponse{}, attendanceerrors.ErrRecordAlreadyClosed
	}
	if err := tx.Commit(); err != nil {
		s.discardAttachment(ctx, attachmentRef)
		return AttendanceResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded", zap.String("attendance_id", recordID))
	return mapToResponse(*updated), nil
}

func (s *service) ListForViewer(ctx context.Context, viewerID, viewerRole string) ([]AttendanceResponse, error) {
	var (
		rows []Attendance
		err  error
	)
	if scope.For(viewerRole) == scope.All {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, viewerID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) CountAll(ctx context.Context) (CountResponse, error) {
	total, err := s.cachedCount(ctx, countTotalKey, func() (int64, error) {
		return s.repo.CountAll(ctx)
	})
	if err != nil {
		return CountResponse{}, err
	}
	return CountResponse{Total: total}, nil
}

func (s *service) CountToday(ctx context.Context) (TodayCountResponse, error) {
	start, end := timeutil.DayRange(s.now(), s.loc)
	date := start.Format("2006-01-02")

	total, err := s.cachedCount(ctx, countTodayPrefix+date, func() (int64, error) {
		return s.repo.CountInRange(ctx, start, end)
	})
	if err != nil {
		return TodayCountResponse{}, err
	}
	return TodayCountResponse{Date: date, PresentToday: total}, nil
}

func (s *service) MonthlyCountFor(ctx context.Context, empCode string) (MonthlyCountResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, empCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MonthlyCountResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return MonthlyCountResponse{}, err
	}

	now := s.now().In(s.loc)
	start, end := timeutil.MonthRange(now, s.loc)

	total, err := s.repo.CountByEmployeeInRange(ctx, emp.ID.String(), start, end)
	if err != nil {
		return MonthlyCountResponse{}, err
	}

	return MonthlyCountResponse{
		EmpCode:      emp.EmpCode,
		EmployeeName: emp.FullName,
		Month:        now.Month().String(),
		Year:         now.Year(),
		Total:        total,
	}, nil
}

// discardAttachment removes a stored file whose record write did not
// land, so a lost check-out race leaves no orphan on disk.
func (s *service) discardAttachment(ctx context.Context, ref *string) {
	if ref == nil {
		return
	}
	if err := s.attachments.Remove(ctx, *ref); err != nil {
		s.logger.Warn("orphaned attachment cleanup failed", zap.String("ref", *ref), zap.Error(err))
	}
}

// cachedCount serves dashboard counters from redis, collapsing
// concurrent misses through singleflight so the DB sees one query.
func (s *service) cachedCount(ctx context.Context, key string, load func() (int64, error)) (int64, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var total int64
			if err := json.Unmarshal([]byte(cached), &total); err == nil {
				return total, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		total, err := load()
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			s.rdb.Set(ctx, key, fmt.Sprintf("%d", total), counterCacheExpiry)
		}
		return total, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (s *service) invalidateCounters(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	date := s.now().In(s.loc).Format("2006-01-02")
	if err := s.rdb.Del(ctx, countTotalKey, countTodayPrefix+date).Err(); err != nil {
		s.logger.Warn("counter cache invalidation failed", zap.Error(err))
	}
}
