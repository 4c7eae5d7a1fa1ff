package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidPassword = errors.New("invalid password")

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User models an account holder. Provider and ProviderID are set for accounts
// created or linked through a social login.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Role         string    `json:"role" bson:"role"`
	Provider     string    `json:"provider,omitempty" bson:"provider,omitempty"`
	ProviderID   string    `json:"-" bson:"provider_id,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// RegistrationStats aggregates sign-ups for a single day.
type RegistrationStats struct {
	Day           time.Time `json:"day"`
	TotalUsers    int64     `json:"totalUsers"`
	EmailUsers    int64     `json:"emailUsers"`
	GoogleUsers   int64     `json:"googleUsers"`
	FacebookUsers int64     `json:"facebookUsers"`
	AppleUsers    int64     `json:"appleUsers"`
}
