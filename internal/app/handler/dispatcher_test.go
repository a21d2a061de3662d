package handler

import (
	"context"
	"testing"

	"bookswap/internal/app/loop"
	"bookswap/internal/app/router"
	"bookswap/internal/app/state"
	"bookswap/internal/app/view"
	"bookswap/internal/domain/entity"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/errors"
	"bookswap/internal/infra/geo"
	mockUsecase "bookswap/internal/mocks/usecase"
	"bookswap/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ravi = entity.User{ID: "u1", Name: "Ravi", Email: "ravi@example.com", Rating: 4.7,
		Location: &entity.Location{Lat: 12.9716, Lng: 77.5946}}
	meena = entity.User{ID: "u2", Name: "Meena", Email: "meena@example.com", Rating: 4.9}
)

func testBooks() []*entity.Book {
	return []*entity.Book{
		{ID: "1", Title: "The Alchemist", Author: "Paulo Coelho", ExchangeType: entity.ExchangeSwap, Owner: ravi.Snapshot()},
		{ID: "2", Title: "Clean Code", Author: "Robert C. Martin", ExchangeType: entity.ExchangeSell, Owner: meena.Snapshot()},
	}
}

// dispatcherFixtures holds all test dependencies for dispatcher tests.
type dispatcherFixtures struct {
	t          *testing.T
	ctx        context.Context
	loop       *loop.Loop
	state      *state.State
	renderer   *view.Renderer
	router     *router.Router
	dispatcher *Dispatcher
	service    *mockUsecase.MockBookExchangeUsecase
}

func createTestDispatcher(t *testing.T, reporter LocationReporter) *dispatcherFixtures {
	t.Helper()

	service := mockUsecase.NewMockBookExchangeUsecase(t)
	lp := loop.New(nil)
	st := state.New()
	renderer := view.New(st, service, lp, nil)
	rt := router.New(st, router.NewMemoryAddress(""), renderer)
	renderer.SetNavigator(rt)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = lp.Run(ctx) }()

	return &dispatcherFixtures{
		t:        t,
		ctx:      ctx,
		loop:     lp,
		state:    st,
		renderer: renderer,
		router:   rt,
		dispatcher: New(Params{
			State:    st,
			Service:  service,
			Loop:     lp,
			Router:   rt,
			Renderer: renderer,
			Reporter: reporter,
		}),
		service: service,
	}
}

// do runs fn on the loop and waits for every follow-up operation to finish.
func (fx *dispatcherFixtures) do(fn func()) {
	fx.t.Helper()

	require.NoError(fx.t, fx.loop.Call(fx.ctx, fn))
	require.NoError(fx.t, fx.loop.Settle(fx.ctx))
}

func (fx *dispatcherFixtures) dispatch(intent Intent) error {
	fx.t.Helper()

	var err error
	fx.do(func() { err = fx.dispatcher.Dispatch(intent) })

	return err
}

func (fx *dispatcherFixtures) screen() view.Screen {
	fx.t.Helper()

	var screen view.Screen
	fx.do(func() { screen = fx.renderer.Screen() })

	return screen
}

func (fx *dispatcherFixtures) openHome(user *entity.User) {
	fx.t.Helper()

	fx.service.EXPECT().GetBooks(mock.Anything).Return(testBooks(), nil).Once()
	fx.do(func() {
		fx.state.CurrentUser = user
		fx.router.Handle()
	})
}

func TestDispatcher_Names(t *testing.T) {
	fx := createTestDispatcher(t, nil)

	names := fx.dispatcher.Names()
	assert.Len(t, names, 14)
	assert.Contains(t, names, "submitLogin")
	assert.Contains(t, names, "reportLocation")
	assert.IsIncreasing(t, names)
}

func TestDispatcher_Decode(t *testing.T) {
	fx := createTestDispatcher(t, nil)

	intent, err := fx.dispatcher.Decode("filterBooks", []byte(`{"query":"code","exchangeType":"Sell"}`))
	require.NoError(t, err)
	assert.Equal(t, FilterBooks{Query: "code", ExchangeType: "Sell"}, intent)

	intent, err = fx.dispatcher.Decode("submitSignup", []byte(`{"name":" Asha ","email":"asha@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, SubmitSignup{FullName: " Asha ", Email: "asha@example.com"}, intent)
	assert.Equal(t, "submitSignup", intent.Name())

	intent, err = fx.dispatcher.Decode("logout", nil)
	require.NoError(t, err)
	assert.Equal(t, Logout{}, intent)

	_, err = fx.dispatcher.Decode("launchRockets", nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownIntent))

	_, err = fx.dispatcher.Decode("openDetail", []byte(`{"bookId":`))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationRequired))
}

func TestDispatcher_SubmitLoginRejectsInvalidEmail(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.do(func() { fx.router.Navigate("login") })

	require.NoError(t, fx.dispatch(SubmitLogin{Email: "   "}))

	screen := fx.screen()
	require.NotNil(t, screen.Login)
	assert.Equal(t, "Please fill in all required fields.", screen.Login.Error)
	fx.service.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestDispatcher_SubmitLoginFailure(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.do(func() { fx.router.Navigate("login") })

	fx.service.EXPECT().Login(mock.Anything, "ravi@example.com").Return(nil, errors.New("disk on fire"))

	require.NoError(t, fx.dispatch(SubmitLogin{Email: " ravi@example.com "}))

	screen := fx.screen()
	assert.Equal(t, state.PageLogin, screen.Page)
	require.NotNil(t, screen.Login)
	assert.Equal(t, "Failed to login.", screen.Login.Error)
	assert.Nil(t, fx.state.CurrentUser)
}

func TestDispatcher_SubmitLoginNavigatesHome(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.do(func() { fx.router.Navigate("login") })

	user := ravi
	fx.service.EXPECT().Login(mock.Anything, "ravi@example.com").Return(&user, nil)
	fx.service.EXPECT().GetBooks(mock.Anything).Return(testBooks(), nil)

	require.NoError(t, fx.dispatch(SubmitLogin{Email: "ravi@example.com"}))

	screen := fx.screen()
	assert.Equal(t, state.PageHome, screen.Page)
	assert.True(t, screen.Header.LoggedIn)
	assert.Equal(t, "Welcome, Ravi!", screen.Header.Welcome)
	require.NotNil(t, screen.Home)
	assert.True(t, screen.Home.CanListBook)
	require.Len(t, screen.Home.Rows, 2)
	assert.True(t, screen.Home.Rows[0].CanDelete)
	assert.False(t, screen.Home.Rows[1].CanDelete)
}

func TestDispatcher_SubmitSignupDuplicate(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.do(func() { fx.router.Navigate("signup") })

	fx.service.EXPECT().Signup(mock.Anything, "Ravi", "ravi@example.com").Return(nil, domainerrors.ErrAlreadyExists)

	require.NoError(t, fx.dispatch(SubmitSignup{FullName: "Ravi", Email: "ravi@example.com"}))

	screen := fx.screen()
	require.NotNil(t, screen.Signup)
	assert.Equal(t, "User already exists.", screen.Signup.Error)
}

func TestDispatcher_LogoutReturnsHome(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	user := ravi
	fx.openHome(&user)

	fx.service.EXPECT().Logout(mock.Anything).Return(nil)
	fx.service.EXPECT().GetBooks(mock.Anything).Return(testBooks(), nil).Once()

	require.NoError(t, fx.dispatch(Logout{}))

	screen := fx.screen()
	assert.Nil(t, fx.state.CurrentUser)
	assert.False(t, screen.Header.LoggedIn)
	require.NotNil(t, screen.Home)
	assert.False(t, screen.Home.CanListBook)
}

func TestDispatcher_FilterBooks(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.openHome(nil)

	require.NoError(t, fx.dispatch(FilterBooks{Query: "CODE", ExchangeType: "All"}))

	screen := fx.screen()
	require.Len(t, screen.Home.Rows, 1)
	assert.Equal(t, "Clean Code", screen.Home.Rows[0].Title)

	require.NoError(t, fx.dispatch(FilterBooks{ExchangeType: "GiveAway"}))

	screen = fx.screen()
	assert.Empty(t, screen.Home.Rows)
	assert.Equal(t, view.EmptyHome, screen.Home.Empty)
}

func TestDispatcher_RequestDeleteRequiresLogin(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.openHome(nil)

	require.NoError(t, fx.dispatch(RequestDelete{BookID: "1", Confirmed: true}))

	assert.Equal(t, "You must be logged in to delete a listing.", fx.screen().Notice)
	fx.service.AssertNotCalled(t, "DeleteBook", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_RequestDeleteNotConfirmed(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	user := ravi
	fx.openHome(&user)

	require.NoError(t, fx.dispatch(RequestDelete{BookID: "1"}))

	assert.Len(t, fx.screen().Home.Rows, 2)
	fx.service.AssertNotCalled(t, "DeleteBook", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_RequestDeleteFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		notice string
	}{
		{name: "not authorized", err: domainerrors.ErrNotAuthorized, notice: "Not authorized."},
		{name: "not found", err: domainerrors.ErrBookNotFound.WithDetails("9"), notice: "Book not found."},
		{name: "unexpected", err: errors.New("boom"), notice: "Could not delete the book."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestDispatcher(t, nil)
			user := ravi
			fx.openHome(&user)

			fx.service.EXPECT().DeleteBook(mock.Anything, "2", "u1").Return(tt.err)

			require.NoError(t, fx.dispatch(RequestDelete{BookID: "2", Confirmed: true}))

			screen := fx.screen()
			assert.Equal(t, tt.notice, screen.Notice)
			assert.Len(t, screen.Home.Rows, 2)
		})
	}
}

func TestDispatcher_RequestDeleteFromDetail(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	user := ravi
	fx.openHome(&user)

	require.NoError(t, fx.dispatch(FilterBooks{Query: "a"}))
	require.NoError(t, fx.dispatch(OpenDetail{BookID: "1"}))
	require.NotNil(t, fx.screen().Overlay)

	fx.service.EXPECT().DeleteBook(mock.Anything, "1", "u1").Return(nil)

	require.NoError(t, fx.dispatch(RequestDelete{BookID: "1", FromOverlay: true, Confirmed: true}))

	screen := fx.screen()
	assert.Nil(t, screen.Overlay)
	assert.Equal(t, "a", screen.Home.Query)
	require.Len(t, screen.Home.Rows, 1)
	assert.Equal(t, "2", screen.Home.Rows[0].ID)
	assert.Len(t, fx.state.Books, 1)
}

func TestDispatcher_SubmitAddBook(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	user := ravi
	fx.openHome(&user)

	require.NoError(t, fx.dispatch(OpenAddBook{}))
	require.NotNil(t, fx.screen().Overlay.AddBook)

	require.NoError(t, fx.dispatch(SubmitAddBook{CreateBookInput: usecase.CreateBookInput{Title: "  ", Author: "X"}}))
	screen := fx.screen()
	require.NotNil(t, screen.Overlay)
	assert.Equal(t, "Please fill in all required fields.", screen.Overlay.AddBook.Error)

	created := &entity.Book{ID: "new", Title: "Dune", Author: "Frank Herbert", ExchangeType: entity.ExchangeSwap, Owner: ravi.Snapshot()}
	fx.service.EXPECT().
		CreateBook(mock.Anything, mock.AnythingOfType("*usecase.CreateBookInput"), mock.AnythingOfType("entity.User")).
		Run(func(_ context.Context, input *usecase.CreateBookInput, owner entity.User) {
			assert.Equal(t, "Dune", input.Title)
			assert.Equal(t, "u1", owner.ID)
			if assert.NotNil(t, owner.Location) {
				assert.InDelta(t, 12.9716, owner.Location.Lat, 1e-9)
			}
		}).
		Return(created, nil)
	fx.service.EXPECT().GetBooks(mock.Anything).Return(append([]*entity.Book{created}, testBooks()...), nil).Once()

	require.NoError(t, fx.dispatch(SubmitAddBook{CreateBookInput: usecase.CreateBookInput{
		Title:        " Dune ",
		Author:       "Frank Herbert",
		ExchangeType: entity.ExchangeSwap,
	}}))

	screen = fx.screen()
	assert.Nil(t, screen.Overlay)
	require.Len(t, screen.Home.Rows, 3)
	assert.Equal(t, "Dune", screen.Home.Rows[0].Title)
	assert.Equal(t, "D", screen.Home.Rows[0].Initials)
}

func TestDispatcher_SubmitAddBookRequiresLogin(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.openHome(nil)

	require.NoError(t, fx.dispatch(OpenAddBook{}))
	assert.Nil(t, fx.screen().Overlay)

	require.NoError(t, fx.dispatch(SubmitAddBook{CreateBookInput: usecase.CreateBookInput{
		Title: "Dune", Author: "Frank Herbert", ExchangeType: entity.ExchangeSwap,
	}}))
	assert.Equal(t, "You must be logged in to delete a listing.", fx.screen().Notice)
}

func TestDispatcher_ContactOwner(t *testing.T) {
	fx := createTestDispatcher(t, nil)
	fx.openHome(nil)

	require.NoError(t, fx.dispatch(OpenDetail{BookID: "2"}))
	require.NoError(t, fx.dispatch(ContactOwner{}))
	assert.Equal(t, "Contacting Meena...", fx.screen().Notice)

	require.NoError(t, fx.dispatch(DismissNotice{}))
	assert.Empty(t, fx.screen().Notice)

	require.NoError(t, fx.dispatch(ContactOwner{BookID: "1"}))
	assert.Equal(t, "Contacting Ravi...", fx.screen().Notice)
}

func TestDispatcher_ReportLocation(t *testing.T) {
	t.Run("without reporter", func(t *testing.T) {
		fx := createTestDispatcher(t, nil)

		assert.NoError(t, fx.dispatch(ReportLocation{Lat: 1, Lng: 2}))
	})

	t.Run("valid position", func(t *testing.T) {
		provider := geo.NewBrowserProvider()
		fx := createTestDispatcher(t, provider)

		require.NoError(t, fx.dispatch(ReportLocation{Lat: 13.0827, Lng: 80.2707}))

		loc, err := provider.CurrentPosition(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.Location{Lat: 13.0827, Lng: 80.2707}, loc)
	})

	t.Run("invalid position", func(t *testing.T) {
		fx := createTestDispatcher(t, geo.NewBrowserProvider())

		err := fx.dispatch(ReportLocation{Lat: 123, Lng: 0})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationRequired))
	})

	t.Run("denied", func(t *testing.T) {
		provider := geo.NewBrowserProvider()
		fx := createTestDispatcher(t, provider)

		require.NoError(t, fx.dispatch(ReportLocation{Denied: true}))

		_, err := provider.CurrentPosition(context.Background())
		assert.ErrorIs(t, err, geo.ErrPermissionDenied)
	})
}
