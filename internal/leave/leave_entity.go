package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Leave is a leave request over a closed calendar-day interval
// [StartDate, EndDate]. The employee is referenced by id; the display
// name is denormalized for rendering only and is never an
// access-control input.
type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leaves_employee_dates"`
	EmployeeName string    `gorm:"column:employee_name;type:varchar(255);not null"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(30);not null;default:'Pending'"`
	StatusChangedAt *time.Time `gorm:"column:status_changed_at;type:timestamptz"`
	Attachment      *string    `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
