package models

import "time"

// User roles. A user holds exactly one role at a time; the identity
// service enforces the exclusivity, not the schema.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleBanned = "banned"
)

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	NickName string `gorm:"not null" json:"nick_name"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Avatar   string `json:"avatar"`            // relative path under the upload dir
	Role     string `gorm:"size:20;default:'user';not null" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	NickName string `json:"nick_name"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}
