// Package admin decides whether an authenticated identity may use the
// management surface. An identity is an administrator if and only if an
// admin_users row exists with exactly its email. Rows are provisioned out
// of band; the application only ever touches last_login.
package admin

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("admin user not found")

type AdminUser struct {
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"last_login"` // nil until the first sign-in
}

// Decision is the three-way outcome of an authorization check. Unauthorized
// and ServiceError collapse to the same rejection at the call site, but the
// gate itself keeps them distinct.
type Decision int

const (
	DecisionAuthorized Decision = iota
	DecisionUnauthorized
	DecisionServiceError
)

// Authorization carries the decision and, when authorized, the matched
// admin record.
type Authorization struct {
	Decision Decision
	Admin    AdminUser
	Err      error // set only for DecisionServiceError
}

// Authorized reports whether the check granted access.
func (a Authorization) Authorized() bool {
	return a.Decision == DecisionAuthorized
}
