package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff account of the institution. Usernames are stored
// lowercased; Protected marks the default management account, which
// cannot be deleted.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	FullName    string         `gorm:"size:255" json:"full_name"`
	Role        string         `gorm:"size:100" json:"role"`
	AccessLevel string         `gorm:"size:20;not null;default:'gerencial'" json:"access_level"`
	Password    string         `gorm:"not null" json:"-"`
	Protected   bool           `gorm:"default:false" json:"protected"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
