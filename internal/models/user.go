package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles form a closed enumeration governing the permission tier.
const (
	RoleAdmin      = "admin"
	RoleCommercial = "commercial"
	RoleRegistered = "registered"
)

// ValidRole reports whether role is one of the known tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCommercial, RoleRegistered:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"size:20;default:'registered'" json:"role"`
	FirstName string         `gorm:"size:80" json:"first_name"`
	LastName  string         `gorm:"size:120" json:"last_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleRegistered
	}
	if !ValidRole(u.Role) {
		return NewValidationError("role", "unknown role: "+u.Role)
	}
	return nil
}

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsCommercial() bool { return u.Role == RoleCommercial }
