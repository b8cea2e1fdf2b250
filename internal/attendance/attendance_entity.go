package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one check-in event. A row with null CheckOutAt is
// "open"; closing it (check-out plus work report) is the only
// mutation and is terminal. Nothing stops an employee from having
// several rows on one day.
type Attendance struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	EmpCode      string     `gorm:"column:emp_code;type:varchar(30);not null;index"`
	EmployeeName string     `gorm:"column:employee_name;type:varchar(255);not null"`
	CheckInAt    time.Time  `gorm:"column:check_in_at;type:timestamptz;not null;index"`
	CheckOutAt   *time.Time `gorm:"column:check_out_at;type:timestamptz"`
	WorkReport   *string    `gorm:"column:work_report;type:text"`
	Attachment   *string    `gorm:"column:attachment;type:varchar(500)"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// IsOpen reports whether the record still awaits its check-out.
func (a Attendance) IsOpen() bool {
	return a.CheckOutAt == nil
}
