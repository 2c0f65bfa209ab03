package auth

import (
	"errors"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"

	MethodPassword = "password"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Principal struct {
	UserID int64
	Name   string
	Email  string
	Role   string // console role: "admin" or "viewer"
	Method string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRole lowercases a console role; unknown values normalize to "".
func NormalizeRole(role string) string {
	switch role = strings.ToLower(strings.TrimSpace(role)); role {
	case RoleAdmin, RoleViewer:
		return role
	default:
		return ""
	}
}

// CanSignIn reports whether an account may open a console session.
func CanSignIn(role string, banned bool) bool {
	return !banned && NormalizeRole(role) != ""
}
