// Package state holds the per-session application snapshot. A State is owned by
// the loop goroutine and must only be touched from loop tasks.
package state

import "bookswap/internal/domain/entity"

// Page is a routable screen of the client.
type Page string

const (
	PageHome    Page = "home"
	PageLogin   Page = "login"
	PageSignup  Page = "signup"
	PageProfile Page = "profile"

	// PageLoading is shown while the session is being restored. It is not routable.
	PageLoading Page = "loading"
)

// State is the client's view of the world.
type State struct {
	// CurrentUser is nil exactly when no session is stored.
	CurrentUser *entity.User
	// Books is the result of the last successful full listing fetch.
	Books          []*entity.Book
	UserLocation   *entity.Location
	LocationStatus entity.LocationStatus
	CurrentPage    Page
	Loading        bool
}

// New returns the state of a client that has not restored its session yet.
func New() *State {
	return &State{
		LocationStatus: entity.LocationInitializing,
		CurrentPage:    PageLoading,
	}
}

// Authenticated reports whether a user is logged in.
func (s *State) Authenticated() bool {
	return s.CurrentUser != nil
}

// Viewer returns the logged-in user's ID or "".
func (s *State) Viewer() string {
	if s.CurrentUser == nil {
		return ""
	}

	return s.CurrentUser.ID
}

// ListingLocation is the location attached to new listings: the device location,
// falling back to the location stored on the user.
func (s *State) ListingLocation() *entity.Location {
	if s.UserLocation != nil {
		return s.UserLocation
	}
	if s.CurrentUser != nil {
		return s.CurrentUser.Location
	}

	return nil
}

// RemoveBook drops the book with the given id from Books.
func (s *State) RemoveBook(id string) {
	kept := s.Books[:0:0]
	for _, b := range s.Books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.Books = kept
}
