package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Profile represents an authenticated user of the storefront
type Profile struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash, never exposed
	FullName  string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=customer admin"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (req *RegisterRequest) ToProfile(hashedPassword string) *Profile {
	now := time.Now()
	return &Profile{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Password:  hashedPassword,
		FullName:  req.FullName,
		Role:      RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Profile) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
