// Package view builds the client's UI tree from application state.
package view

import (
	"slices"
	"strings"

	"bookswap/internal/app/state"
	"bookswap/internal/domain/entity"
	"bookswap/internal/infra/geo"
)

// FilterAll matches every exchange type.
const FilterAll = "All"

// Empty-list messages.
const (
	EmptyHome     = "No books found."
	EmptyProfile  = "You haven't listed any books yet."
	NoDescription = "No description provided."
)

// OverlayKind names the modal currently shown over the page.
type OverlayKind string

const (
	OverlayDetail  OverlayKind = "detail"
	OverlayAddBook OverlayKind = "addBook"
)

// Screen is the whole UI at one point in time.
type Screen struct {
	Header   HeaderView   `json:"header"`
	Page     state.Page   `json:"page"`
	Home     *HomeView    `json:"home,omitempty"`
	Login    *FormView    `json:"login,omitempty"`
	Signup   *FormView    `json:"signup,omitempty"`
	Profile  *ProfileView `json:"profile,omitempty"`
	Overlay  *OverlayView `json:"overlay,omitempty"`
	Notice   string       `json:"notice,omitempty"`
	Revision uint64       `json:"revision"`
}

// HeaderView shows either the login/signup affordances or the welcome line and logout.
type HeaderView struct {
	LoggedIn bool   `json:"loggedIn"`
	Welcome  string `json:"welcome,omitempty"`
}

// HomeView is the searchable list of every listing.
type HomeView struct {
	Query          string    `json:"query"`
	Type           string    `json:"type"`
	TypeOptions    []string  `json:"typeOptions"`
	CanListBook    bool      `json:"canListBook"`
	LocationStatus string    `json:"locationStatus"`
	Loading        bool      `json:"loading"`
	Rows           []BookRow `json:"rows"`
	Empty          string    `json:"empty,omitempty"`
}

// FormView is the login or signup form.
type FormView struct {
	Error string `json:"error,omitempty"`
}

// ProfileView is the logged-in user's card and their own listings.
type ProfileView struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Rating  float64   `json:"rating"`
	Loading bool      `json:"loading"`
	Rows    []BookRow `json:"rows"`
	Empty   string    `json:"empty,omitempty"`
}

// BookRow is one card of a book list.
type BookRow struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	CoverImageURL string  `json:"coverImageUrl,omitempty"`
	Initials      string  `json:"initials,omitempty"`
	ExchangeType  string  `json:"exchangeType"`
	OwnerName     string  `json:"ownerName"`
	OwnerRating   float64 `json:"ownerRating"`
	Distance      string  `json:"distance,omitempty"`
	CanDelete     bool    `json:"canDelete"`
}

// OverlayView is the single modal on top of the page.
type OverlayView struct {
	Kind    OverlayKind  `json:"kind"`
	Detail  *DetailView  `json:"detail,omitempty"`
	AddBook *AddBookView `json:"addBook,omitempty"`
}

// DetailView is the book detail modal.
type DetailView struct {
	BookID       string  `json:"bookId"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	ExchangeType string  `json:"exchangeType"`
	Description  string  `json:"description"`
	OwnerName    string  `json:"ownerName"`
	OwnerRating  float64 `json:"ownerRating"`
	Distance     string  `json:"distance,omitempty"`
	CanDelete    bool    `json:"canDelete"`
}

// AddBookView is the listing form modal.
type AddBookView struct {
	ExchangeTypes []string `json:"exchangeTypes"`
	Error         string   `json:"error,omitempty"`
}

// Clone returns a deep copy that shares nothing with s.
func (s Screen) Clone() Screen {
	out := s
	if s.Home != nil {
		home := *s.Home
		home.TypeOptions = slices.Clone(s.Home.TypeOptions)
		home.Rows = slices.Clone(s.Home.Rows)
		out.Home = &home
	}
	if s.Login != nil {
		login := *s.Login
		out.Login = &login
	}
	if s.Signup != nil {
		signup := *s.Signup
		out.Signup = &signup
	}
	if s.Profile != nil {
		profile := *s.Profile
		profile.Rows = slices.Clone(s.Profile.Rows)
		out.Profile = &profile
	}
	if s.Overlay != nil {
		overlay := *s.Overlay
		if s.Overlay.Detail != nil {
			detail := *s.Overlay.Detail
			overlay.Detail = &detail
		}
		if s.Overlay.AddBook != nil {
			addBook := *s.Overlay.AddBook
			addBook.ExchangeTypes = slices.Clone(s.Overlay.AddBook.ExchangeTypes)
			overlay.AddBook = &addBook
		}
		out.Overlay = &overlay
	}

	return out
}

// FilterBooks keeps the books whose title or author contains query (case-insensitive)
// and whose exchange type is exchangeType, or any type for FilterAll.
func FilterBooks(books []*entity.Book, query, exchangeType string) []*entity.Book {
	needle := strings.ToLower(query)

	filtered := make([]*entity.Book, 0, len(books))
	for _, b := range books {
		if exchangeType != FilterAll && string(b.ExchangeType) != exchangeType {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			continue
		}
		filtered = append(filtered, b)
	}

	return filtered
}

// Rows converts books into list cards for the given viewer.
func Rows(books []*entity.Book, viewerID string, viewerLocation *entity.Location) []BookRow {
	rows := make([]BookRow, 0, len(books))
	for _, b := range books {
		row := BookRow{
			ID:            b.ID,
			Title:         b.Title,
			Author:        b.Author,
			CoverImageURL: b.CoverImageURL,
			ExchangeType:  b.ExchangeType.String(),
			OwnerName:     b.Owner.Name,
			OwnerRating:   b.Owner.Rating,
			Distance:      geo.Annotate(viewerLocation, b.Owner.Location),
			CanDelete:     b.OwnedBy(viewerID),
		}
		if row.CoverImageURL == "" {
			row.Initials = b.Initials()
		}
		rows = append(rows, row)
	}

	return rows
}

// Detail builds the detail modal for book.
func Detail(b *entity.Book, viewerID string, viewerLocation *entity.Location) *DetailView {
	description := b.Description
	if description == "" {
		description = NoDescription
	}

	return &DetailView{
		BookID:       b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ExchangeType: b.ExchangeType.String(),
		Description:  description,
		OwnerName:    b.Owner.Name,
		OwnerRating:  b.Owner.Rating,
		Distance:     geo.Annotate(viewerLocation, b.Owner.Location),
		CanDelete:    b.OwnedBy(viewerID),
	}
}

func typeOptions() []string {
	options := []string{FilterAll}
	for _, t := range entity.ExchangeTypes {
		options = append(options, t.String())
	}

	return options
}

func exchangeTypes() []string {
	types := make([]string, 0, len(entity.ExchangeTypes))
	for _, t := range entity.ExchangeTypes {
		types = append(types, t.String())
	}

	return types
}
