package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/attachment"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee"
	employeeerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/employee/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/events"
	leaveerrors "github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/leave/errors"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/messaging/kafka"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/scope"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/contextutil"
	"github.com/Ajay-karuppaiyan/sensitivetechcrm/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest, file *multipart.FileHeader) (LeaveResponse, error)
	ListForViewer(ctx context.Context, viewerID, viewerRole string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest, file *multipart.FileHeader) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (CountResponse, error)
	Today(ctx context.Context) ([]LeaveResponse, error)
	ByEmployee(ctx context.Context, empCode string) ([]LeaveResponse, error)
	CurrentMonthFor(ctx context.Context, empCode string) ([]LeaveResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	attachments  attachment.Store
	outboxRepo   kafka.OutboxRepository
	loc          *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	attachments attachment.Store,
	outboxRepo kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if loc == nil {
		loc = timeutil.ReportingZone()
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		attachments:  attachments,
		outboxRepo:   outboxRepo,
		loc:          loc,
		logger:       l,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest, file *multipart.FileHeader) (LeaveResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	// An admin may file on behalf of an employee by code; everyone
	// else files for themselves, keyed by the verified session id.
	var emp *employee.Employee
	if req.EmpCode != "" {
		emp, err = s.employeeRepo.FindByCode(ctx, req.EmpCode)
	} else {
		emp, err = s.employeeRepo.FindByID(ctx, actorID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	var attachmentRef *string
	if file != nil {
		ref, err := s.attachments.Store(ctx, file)
		if err != nil {
			s.logger.Error("leave attachment upload failed", zap.Error(err))
			return LeaveResponse{}, leaveerrors.ErrAttachmentUpload
		}
		attachmentRef = &ref
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
		Status:       StatusPending,
		Attachment:   attachmentRef,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request created",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", emp.ID.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) ListForViewer(ctx context.Context, viewerID, viewerRole string) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if scope.For(viewerRole) == scope.All {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByEmployee(ctx, viewerID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest, file *multipart.FileHeader) (LeaveResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if file != nil {
		ref, err := s.attachments.Store(ctx, file)
		if err != nil {
			s.logger.Error("leave attachment upload failed", zap.Error(err))
			return LeaveResponse{}, leaveerrors.ErrAttachmentUpload
		}
		l.Attachment = &ref
	}

	l.StartDate = startDate
	l.EndDate = endDate
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	return mapToResponse(*l), nil
}

// UpdateStatus overwrites the status unconditionally: any non-empty
// value may replace any other, as the review UI depends on. The
// change and its outbox event commit in one transaction.
func (s *service) UpdateStatus(ctx context.Context, id, status string) (LeaveResponse, error) {
	if status == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	oldStatus := l.Status
	changedAt := s.now().UTC()
	l.Status = status
	l.StatusChangedAt = &changedAt

	if err := qtx.Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}

	if s.outboxRepo != nil {
		payload, err := json.Marshal(events.LeaveStatusChangedEvent{
			EventType:  "leave.status.changed",
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			OldStatus:  oldStatus,
			NewStatus:  status,
			OccurredAt: changedAt,
		})
		if err != nil {
			return LeaveResponse{}, err
		}

		event := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "leave",
			AggregateID:   l.ID.String(),
			EventType:     "leave.status.changed",
			Topic:         events.LeaveStatusChangedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("outbox write failed", zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave status updated",
		zap.String("leave_id", id),
		zap.String("old_status", oldStatus),
		zap.String("new_status", status),
	)
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CountAll(ctx context.Context) (CountResponse, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return CountResponse{}, err
	}
	return CountResponse{Total: total}, nil
}

// Today returns every leave whose interval covers today's calendar
// date in the reporting zone, across all employees.
func (s *service) Today(ctx context.Context) ([]LeaveResponse, error) {
	today := dateOnly(s.now(), s.loc)

	leaves, err := s.repo.FindOverlapping(ctx, "", today, today)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ByEmployee(ctx context.Context, empCode string) ([]LeaveResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, empCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, emp.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) CurrentMonthFor(ctx context.Context, empCode string) ([]LeaveResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, empCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	monthStart, monthEnd := timeutil.MonthRange(s.now(), s.loc)
	rangeStart := dateOnly(monthStart, s.loc)
	rangeEnd := dateOnly(monthEnd, s.loc)

	leaves, err := s.repo.FindOverlapping(ctx, emp.ID.String(), rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// parseDateRange validates the YYYY-MM-DD pair and its ordering.
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.ParseInLocation("2006-01-02", start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.ParseInLocation("2006-01-02", end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// dateOnly collapses an instant to UTC midnight of its calendar date
// in loc, matching how the date columns are stored.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}
