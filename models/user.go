package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
	RoleStaff      = "staff"
	RoleCustomer   = "customer"
	RoleTable      = "table"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role      string         `gorm:"type:varchar(50);not null;default:'customer'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// CanApplyManualDiscount gates the admin-supplied discount override.
func CanApplyManualDiscount(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// IsLowTrustRole marks actors subject to the order rate limit.
func IsLowTrustRole(role string) bool {
	return role == RoleCustomer || role == RoleTable
}
