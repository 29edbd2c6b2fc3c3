package models

import (
	"strconv"

	"gorm.io/gorm"
)

// User roles
const (
	RoleVendor = "vendor"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleVendor, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User is any account in the system. BalanceDue is only meaningful for vendors.
// Email and phone are unique among live accounts only, so a deleted
// account's email can be registered again.
type User struct {
	gorm.Model
	Name       string  `gorm:"not null" json:"name"`
	Email      string  `gorm:"uniqueIndex:idx_users_email_live,where:deleted_at IS NULL;not null" json:"email"`
	Password   string  `json:"-"`
	Role       string  `gorm:"index;not null" json:"role"`
	Phone      *string `gorm:"uniqueIndex:idx_users_phone_live,where:deleted_at IS NULL" json:"phone,omitempty"`
	Location   string  `json:"location"`
	BalanceDue float64 `gorm:"not null;default:0" json:"balance_due"`
}

// Principal returns the authenticated identity of the user
func (u User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// Principal is the authenticated caller of an operation
type Principal struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// Room returns the notification room the principal listens on
func (p Principal) Room() string {
	return RoomFor(p.Role, strconv.FormatUint(uint64(p.ID), 10))
}

// RoomFor builds a room name: every admin shares one room, everybody else
// has a private "role:id" room.
func RoomFor(role, userID string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return role + ":" + userID
}
