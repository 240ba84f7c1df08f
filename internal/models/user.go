package models

import "time"

// Role is a named permission bucket. Every user belongs to exactly one role.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:150;not null"`
}

// User represents a storefront account.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash
	RoleID    uint      `json:"role_id" gorm:"index;not null"`
	Role      *Role     `json:"role,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
