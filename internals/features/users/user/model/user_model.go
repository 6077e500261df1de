package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table. The password hash never leaves the API.
type UserModel struct {
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserFirstName   string     `gorm:"column:user_first_name;type:varchar(100);not null" json:"user_first_name"`
	UserLastName    string     `gorm:"column:user_last_name;type:varchar(100);not null" json:"user_last_name"`
	UserEmail       string     `gorm:"column:user_email;type:varchar(255);uniqueIndex;not null" json:"user_email"`
	UserPassword    string     `gorm:"column:user_password;type:varchar(255);not null" json:"-"`
	UserRole        string     `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserProfileID   *uuid.UUID `gorm:"column:user_profile_id;type:uuid" json:"user_profile_id,omitempty"`
	UserProfileType *string    `gorm:"column:user_profile_type;type:varchar(20)" json:"user_profile_type,omitempty"`
	UserCreatedAt   time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt   time.Time  `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
