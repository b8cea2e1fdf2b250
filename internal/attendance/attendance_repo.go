package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindAll(ctx context.Context) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	// Close transitions a record from open to closed, guarded so only
	// one of two racing check-outs wins. Returns the number of rows
	// updated: zero means the record was already closed (or gone).
	Close(ctx context.Context, id string, checkOutAt time.Time, workReport string, attachment *string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountInRange(ctx context.Context, start, end time.Time) (int64, error)
	CountByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn returns a gorm handle bound to the caller's transaction when
// one was attached via WithTx, so every statement commits or rolls
// back with it instead of running on the pool.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
		db.Statement.ConnPool = r.tx
		return db
	}
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Order("check_in_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("check_in_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Close(ctx context.Context, id string, checkOutAt time.Time, workReport string, attachment *string) (int64, error) {
	updates := map[string]interface{}{
		"check_out_at": checkOutAt,
		"work_report":  workReport,
	}
	if attachment != nil {
		updates["attachment"] = *attachment
	}

	res := r.conn(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Where("check_out_at IS NULL").
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&Attendance{}).Count(&count).Error
	return count, err
}

func (r *repository) CountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("check_in_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("check_in_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}
