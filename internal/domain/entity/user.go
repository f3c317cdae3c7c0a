// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the sole aggregate in the system, representing one registered account.
// ID and CreatedAt are assigned by the store at creation and never change.
type User struct {
	ID           int64     // Positive integer primary key, assigned by the store.
	Username     string    // Unique login handle, 3-50 chars of [A-Za-z0-9_].
	Email        string    // Unique contact address.
	PasswordHash string    // Opaque bcrypt hash. Never exposed outward.
	FullName     string    // Display name; non-empty after trimming.
	CreatedAt    time.Time // Set once at creation.
}

// PublicView is the externally safe projection of a User: every attribute
// except the password hash. The wire field for the full name is "nama",
// preserved from the original API contract.
type PublicView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"nama"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the user's public view.
func (u *User) Public() PublicView {
	return PublicView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// PublicViews maps a slice of users to their public views.
func PublicViews(users []*User) []PublicView {
	views := make([]PublicView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}

	return views
}
