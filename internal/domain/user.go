package domain

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOwner    UserRole = "OWNER"
	UserRoleCustomer UserRole = "CUSTOMER"
)

// ValidUserRole reports whether s is one of the known roles.
func ValidUserRole(s string) bool {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleOwner, UserRoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Phone        string    `json:"phone"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// UserFilter narrows user listings. Zero values mean "no constraint".
type UserFilter struct {
	Role  string
	Email string
}
