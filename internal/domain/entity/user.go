// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// DefaultRating is the rating every newly registered user starts with.
const DefaultRating = 5.0

// User is a single person taking part in the exchange. A user is identified by ID
// and is unique by Email.
type User struct {
	ID       string    `json:"id"`                 // Opaque identifier assigned by the store.
	Name     string    `json:"name"`               // Display name.
	Email    string    `json:"email"`              // Login identifier, unique across users.
	Rating   float64   `json:"rating"`             // Community rating, 0..5.
	Location *Location `json:"location,omitempty"` // Last known location, if any.
}

// GetID returns the user ID.
func (u *User) GetID() string {
	return u.ID
}

// SetID assigns the user ID.
func (u *User) SetID(id string) {
	u.ID = id
}

// Snapshot returns a value copy of the user suitable for embedding into a Book.
// The copy shares nothing with the receiver.
func (u *User) Snapshot() User {
	snapshot := *u
	if u.Location != nil {
		loc := *u.Location
		snapshot.Location = &loc
	}

	return snapshot
}
