package models

import "time"

// User rows are provisioned by the identity provider; this service only reads them.
type User struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Role  string `gorm:"size:20;not null;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser    = "user"
	RoleManager = "manager"
)

func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}
