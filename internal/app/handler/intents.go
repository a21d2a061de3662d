// Package handler turns user intents into state, service and view updates.
package handler

import "bookswap/internal/usecase"

// Intent is a single user action.
type Intent interface {
	Name() string
}

// Navigate follows an in-app link.
type Navigate struct {
	Target string `json:"target"`
}

// HashChange reports an address change made outside the client.
type HashChange struct {
	Fragment string `json:"fragment"`
}

// SubmitLogin submits the login form.
type SubmitLogin struct {
	Email string `json:"email" validate:"required,email"`
}

// SubmitSignup submits the signup form.
type SubmitSignup struct {
	FullName string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Logout ends the session from the header.
type Logout struct{}

// FilterBooks changes the home page search text or exchange type.
type FilterBooks struct {
	Query        string `json:"query"`
	ExchangeType string `json:"exchangeType"`
}

// OpenDetail opens the detail modal of a listed book.
type OpenDetail struct {
	BookID string `json:"bookId" validate:"required"`
}

// OpenAddBook opens the listing form.
type OpenAddBook struct{}

// CloseOverlay closes whichever modal is open.
type CloseOverlay struct{}

// SubmitAddBook submits the listing form.
type SubmitAddBook struct {
	usecase.CreateBookInput
}

// RequestDelete asks to delete a listing. Confirmed carries the answer to the
// confirmation prompt.
type RequestDelete struct {
	BookID      string `json:"bookId" validate:"required"`
	FromOverlay bool   `json:"fromOverlay"`
	Confirmed   bool   `json:"confirmed"`
}

// ContactOwner presses the contact button of the detail modal.
type ContactOwner struct {
	BookID string `json:"bookId,omitempty"`
}

// DismissNotice closes the current notice.
type DismissNotice struct{}

// ReportLocation delivers the host's answer to the position request.
type ReportLocation struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Denied bool    `json:"denied"`
}

func (Navigate) Name() string       { return "navigate" }
func (HashChange) Name() string     { return "hashChange" }
func (SubmitLogin) Name() string    { return "submitLogin" }
func (SubmitSignup) Name() string   { return "submitSignup" }
func (Logout) Name() string         { return "logout" }
func (FilterBooks) Name() string    { return "filterBooks" }
func (OpenDetail) Name() string     { return "openDetail" }
func (OpenAddBook) Name() string    { return "openAddBook" }
func (CloseOverlay) Name() string   { return "closeOverlay" }
func (SubmitAddBook) Name() string  { return "submitAddBook" }
func (RequestDelete) Name() string  { return "requestDelete" }
func (ContactOwner) Name() string   { return "contactOwner" }
func (DismissNotice) Name() string  { return "dismissNotice" }
func (ReportLocation) Name() string { return "reportLocation" }
