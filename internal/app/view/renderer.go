package view

import (
	"context"
	"log/slog"

	"bookswap/internal/app/loop"
	"bookswap/internal/app/state"
	"bookswap/internal/domain/entity"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/usecase"
)

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(target string)
}

// Renderer keeps the Screen consistent with State. It implements router.Painter
// and must only be used from loop tasks.
//
// Every page entry gets a new generation number. Data fetched for an older
// entry still updates State but never repaints the screen.
type Renderer struct {
	state   *state.State
	service usecase.BookExchangeUsecase
	loop    *loop.Loop
	nav     Navigator
	logger  *slog.Logger

	screen       Screen
	entry        uint64
	overlaySeq   uint64
	overlayBook  *entity.Book
	profileBooks []*entity.Book
}

// New creates a renderer showing the loading page.
func New(st *state.State, service usecase.BookExchangeUsecase, lp *loop.Loop, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Renderer{
		state:   st,
		service: service,
		loop:    lp,
		logger:  logger.With(slog.String("component", "view")),
		screen:  Screen{Page: state.PageLoading},
	}
}

// SetNavigator wires the router used for redirects.
func (r *Renderer) SetNavigator(nav Navigator) {
	r.nav = nav
}

// Screen returns a copy of the current UI tree.
func (r *Renderer) Screen() Screen {
	return r.screen.Clone()
}

func (r *Renderer) touch() {
	r.screen.Revision++
}

// Header repaints login/signup affordances or the welcome line.
func (r *Renderer) Header() {
	if user := r.state.CurrentUser; user != nil {
		r.screen.Header = HeaderView{LoggedIn: true, Welcome: "Welcome, " + user.Name + "!"}
	} else {
		r.screen.Header = HeaderView{}
	}
	r.touch()
}

// Loading shows the placeholder displayed while the session is restored.
func (r *Renderer) Loading() {
	r.enter(state.PageLoading)
	r.touch()
}

// Page enters page, closing any overlay and starting its data load.
func (r *Renderer) Page(page state.Page) {
	r.enter(page)
	r.screen.Overlay = nil
	r.overlayBook = nil

	switch page {
	case state.PageHome:
		r.paintHome()
	case state.PageLogin:
		r.screen.Login = &FormView{}
	case state.PageSignup:
		r.screen.Signup = &FormView{}
	case state.PageProfile:
		r.paintProfile()
	}
	r.touch()
}

// RepaintProfile re-enters the profile page in place, refetching the user's listings.
func (r *Renderer) RepaintProfile() {
	r.entry++
	r.screen.Profile = nil
	r.paintProfile()
	r.touch()
}

func (r *Renderer) enter(page state.Page) {
	r.entry++
	r.screen.Page = page
	r.screen.Home = nil
	r.screen.Login = nil
	r.screen.Signup = nil
	r.screen.Profile = nil
	r.profileBooks = nil
}

func (r *Renderer) paintHome() {
	entry := r.entry
	r.screen.Home = &HomeView{
		Type:           FilterAll,
		TypeOptions:    typeOptions(),
		CanListBook:    r.state.Authenticated(),
		LocationStatus: r.state.LocationStatus.Label(),
		Loading:        true,
	}

	loop.Suspend(r.loop, r.service.GetBooks, func(books []*entity.Book, err error) {
		if err != nil {
			r.logger.Warn("Failed to load books", slog.String("error", err.Error()))
			if r.entry == entry && r.screen.Home != nil {
				r.screen.Home.Loading = false
				r.renderHomeRows()
				r.screen.Notice = domainerrors.MessageOf(err)
				r.touch()
			}

			return
		}

		r.state.Books = books
		if r.entry != entry || r.screen.Home == nil {
			r.logger.Debug("Dropped stale book list")

			return
		}

		r.screen.Home.Loading = false
		r.renderHomeRows()
		r.touch()
	})
}

func (r *Renderer) paintProfile() {
	user := r.state.CurrentUser
	if user == nil {
		if r.nav != nil {
			r.nav.Navigate(string(state.PageLogin))
		}

		return
	}

	entry := r.entry
	r.screen.Profile = &ProfileView{
		Name:    user.Name,
		Email:   user.Email,
		Rating:  user.Rating,
		Loading: true,
	}

	loop.Suspend(r.loop, func(ctx context.Context) ([]*entity.Book, error) {
		return r.service.GetBooksByOwner(ctx, user.ID)
	}, func(books []*entity.Book, err error) {
		if r.entry != entry || r.screen.Profile == nil {
			r.logger.Debug("Dropped stale profile list")

			return
		}

		r.screen.Profile.Loading = false
		if err != nil {
			r.logger.Warn("Failed to load profile books", slog.String("error", err.Error()))
			r.screen.Notice = domainerrors.MessageOf(err)
		} else {
			r.profileBooks = books
		}
		r.renderProfileRows()
		r.touch()
	})
}

func (r *Renderer) renderHomeRows() {
	home := r.screen.Home
	books := FilterBooks(r.state.Books, home.Query, home.Type)

	home.Rows = Rows(books, r.state.Viewer(), r.state.UserLocation)
	home.Empty = ""
	if len(home.Rows) == 0 {
		home.Empty = EmptyHome
	}
}

func (r *Renderer) renderProfileRows() {
	profile := r.screen.Profile

	profile.Rows = Rows(r.profileBooks, r.state.Viewer(), r.state.UserLocation)
	profile.Empty = ""
	if len(profile.Rows) == 0 {
		profile.Empty = EmptyProfile
	}
}

// SetFilter applies the home page search and type filter to the fetched list.
// It reports whether the home page was visible.
func (r *Renderer) SetFilter(query, exchangeType string) bool {
	home := r.screen.Home
	if home == nil {
		return false
	}

	if exchangeType == "" {
		exchangeType = FilterAll
	}
	home.Query = query
	home.Type = exchangeType
	if !home.Loading {
		r.renderHomeRows()
	}
	r.touch()

	return true
}

// RefreshBookList repaints the home list from State.Books when it is visible and loaded.
func (r *Renderer) RefreshBookList() {
	if r.screen.Home == nil || r.screen.Home.Loading {
		return
	}

	r.renderHomeRows()
	r.touch()
}

// LocationChanged repaints everything that shows the location status or distances.
func (r *Renderer) LocationChanged() {
	if home := r.screen.Home; home != nil {
		home.LocationStatus = r.state.LocationStatus.Label()
		if !home.Loading {
			r.renderHomeRows()
		}
	}
	if profile := r.screen.Profile; profile != nil && !profile.Loading {
		r.renderProfileRows()
	}
	if r.overlayBook != nil && r.screen.Overlay != nil && r.screen.Overlay.Detail != nil {
		r.screen.Overlay.Detail = Detail(r.overlayBook, r.state.Viewer(), r.state.UserLocation)
	}
	r.touch()
}

// OpenDetail shows the detail modal for a book of the visible list. It reports
// whether the book was found.
func (r *Renderer) OpenDetail(bookID string) bool {
	source := r.state.Books
	if r.screen.Page == state.PageProfile {
		source = r.profileBooks
	}

	for _, b := range source {
		if b.ID != bookID {
			continue
		}

		r.overlaySeq++
		r.overlayBook = b
		r.screen.Overlay = &OverlayView{
			Kind:   OverlayDetail,
			Detail: Detail(b, r.state.Viewer(), r.state.UserLocation),
		}
		r.touch()

		return true
	}

	return false
}

// OpenAddBook shows the listing form. Only logged-in users can list books.
func (r *Renderer) OpenAddBook() bool {
	if !r.state.Authenticated() {
		return false
	}

	r.overlaySeq++
	r.overlayBook = nil
	r.screen.Overlay = &OverlayView{
		Kind:    OverlayAddBook,
		AddBook: &AddBookView{ExchangeTypes: exchangeTypes()},
	}
	r.touch()

	return true
}

// OverlaySeq identifies the overlay currently open. Zero means none.
func (r *Renderer) OverlaySeq() uint64 {
	if r.screen.Overlay == nil {
		return 0
	}

	return r.overlaySeq
}

// OverlayBook returns the book shown in the detail modal, if any.
func (r *Renderer) OverlayBook() *entity.Book {
	return r.overlayBook
}

// CloseOverlay removes the modal. The page underneath is untouched.
func (r *Renderer) CloseOverlay() {
	if r.screen.Overlay == nil {
		return
	}

	r.screen.Overlay = nil
	r.overlayBook = nil
	r.touch()
}

// CloseOverlayIf closes the modal only if seq still identifies it.
func (r *Renderer) CloseOverlayIf(seq uint64) {
	if seq != 0 && r.OverlaySeq() == seq {
		r.CloseOverlay()
	}
}

// SetAddBookError shows msg in the listing form identified by seq.
func (r *Renderer) SetAddBookError(seq uint64, msg string) {
	if r.OverlaySeq() != seq || r.screen.Overlay.AddBook == nil {
		return
	}

	r.screen.Overlay.AddBook.Error = msg
	r.touch()
}

// SetLoginError shows msg inline in the login form when it is visible.
func (r *Renderer) SetLoginError(msg string) {
	if r.screen.Login == nil {
		return
	}

	r.screen.Login.Error = msg
	r.touch()
}

// SetSignupError shows msg inline in the signup form when it is visible.
func (r *Renderer) SetSignupError(msg string) {
	if r.screen.Signup == nil {
		return
	}

	r.screen.Signup.Error = msg
	r.touch()
}

// ShowNotice displays a dismissible message.
func (r *Renderer) ShowNotice(msg string) {
	r.screen.Notice = msg
	r.touch()
}

// DismissNotice clears the message.
func (r *Renderer) DismissNotice() {
	if r.screen.Notice == "" {
		return
	}

	r.screen.Notice = ""
	r.touch()
}

// ProfileBooks returns the listings shown on the profile page.
func (r *Renderer) ProfileBooks() []*entity.Book {
	return r.profileBooks
}
