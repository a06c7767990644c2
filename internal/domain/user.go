package domain

import "time"

// User roles
const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
	RoleReader      = "reader"
)

// ValidRole reports whether the given role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleContributor || role == RoleReader
}

// User represents a registered account (users table)
type User struct {
	ID          string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Username    string    `gorm:"column:username;size:50;uniqueIndex" json:"username"`
	Email       string    `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	DisplayName string    `gorm:"column:display_name;size:100" json:"display_name"`
	Password    string    `gorm:"column:hashed_password;size:255" json:"-"`
	Role        string    `gorm:"column:role;size:20;default:contributor" json:"role"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// UserResponse is the public view of a user (no password hash)
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts a User to its public view
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// RegisterRequest registration payload
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"omitempty,oneof=admin contributor reader"`
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse matches the auth contract: token plus a trimmed user record
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *SessionUser `json:"user"`
}

// SessionUser is the subset of user fields a client session needs
type SessionUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IsAdmin reports whether the session user has the admin role
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
