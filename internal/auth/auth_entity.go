package auth

import (
	"time"

	"github.com/google/uuid"
)

// Superadmin is the separate administrator identity looked up by
// office email. Its role is fixed and never read from the record.
type Superadmin struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName    string    `gorm:"column:full_name"`
	OfficeEmail string    `gorm:"column:office_email;type:varchar(255);uniqueIndex;not null"`
	Password    string    `gorm:"type:varchar(255);not null"` // bcrypt hash
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Superadmin) TableName() string {
	return "superadmins"
}
