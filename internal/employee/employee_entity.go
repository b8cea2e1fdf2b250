package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a read-only projection of the directory owned by the
// employee-management service. This core never writes to it.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmpCode   string    `gorm:"column:emp_code;type:varchar(30);uniqueIndex"`
	FullName  string    `gorm:"column:full_name"`
	Email     string    `gorm:"uniqueIndex"`
	Password  string    `gorm:"type:varchar(255)"` // bcrypt hash
	Role      string    `gorm:"type:varchar(30);not null;default:'Employee'"`
	Status    string    `gorm:"type:varchar(30);not null;default:'Active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
