package staff

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Table: roles
type Role struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;size:64;not null;uniqueIndex" json:"name"`
}

func (Role) TableName() string { return "roles" }

// Table: users
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"column:full_name;size:128" json:"full_name"`
	RoleID    uint64    `gorm:"column:role_id;not null;index" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"role"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// DisplayName prefers the full name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type Repository interface {
	// ErrNotFound when the user is missing or inactive
	GetActiveByID(ctx context.Context, id uint64) (*User, error)
	ListActiveByRoleNames(ctx context.Context, roles []string) ([]User, error)
}
