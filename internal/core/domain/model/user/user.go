// Package user holds the read-only view of accounts owned by the identity
// service. The fulfillment core never creates or edits users.
package user

import "fulfillment/internal/core/domain/model/kernel"

// User is a directory entry. Address may be empty.
type User struct {
	ID      kernel.UUID
	Name    string
	Email   string
	Phone   string
	Role    kernel.Role
	Address kernel.Address
	Active  bool
}

// HasEmail reports whether mail can be sent to the user.
func (u User) HasEmail() bool {
	return u.Email != ""
}
