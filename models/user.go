package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

const unusablePasswordPrefix = "!"

type User struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         string    `json:"bio" gorm:"type:text"`
	Password    string    `json:"-"`
	Role        UserRole  `json:"role" gorm:"type:varchar(20);default:'user'"`
	IsSuperuser bool      `json:"-" gorm:"default:false"`
	IsStaff     bool      `json:"-" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin users pass every rule a moderator or plain user would pass.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.IsStaff || u.Role == RoleModerator
}

// HasUsablePassword reports whether the account can ever authenticate with
// a password. Accounts created through the email flow get an unusable
// placeholder and only obtain tokens via confirmation codes.
func (u *User) HasUsablePassword() bool {
	return u.Password != "" && !strings.HasPrefix(u.Password, unusablePasswordPrefix)
}

// UnusablePassword builds a login-disabled placeholder around a random
// component. The placeholder is also the password state that feeds
// confirmation code derivation, so codes stop verifying if the password
// ever changes.
func UnusablePassword(random string) string {
	return unusablePasswordPrefix + random
}
