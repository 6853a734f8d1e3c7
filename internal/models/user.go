package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the account record kept by the external auth service. The
// AuthzID links rows here to the authorizer's user id.
type User struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	AuthzID   string `gorm:"size:191;uniqueIndex;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Farms     []Farm `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a uuid primary key when none is supplied.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
