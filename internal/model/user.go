package model

import (
	"fmt"
	"time"
)

type UserRole string

const (
	UserRolePatient  UserRole = "patient"
	UserRoleProvider UserRole = "provider"
)

func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(s)
	switch role {
	case UserRolePatient, UserRoleProvider:
		return role, nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
