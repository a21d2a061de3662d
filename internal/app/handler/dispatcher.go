package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"bookswap/internal/app/loop"
	"bookswap/internal/app/router"
	"bookswap/internal/app/state"
	"bookswap/internal/app/view"
	"bookswap/internal/domain/entity"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/errors"
	"bookswap/internal/usecase"

	"github.com/go-playground/validator/v10"
)

const (
	contactingPrefix      = "Contacting "
	deleteFallbackMessage = "Could not delete the book."
)

// LocationReporter accepts the host's answer to a position request.
type LocationReporter interface {
	Report(loc entity.Location) error
	Deny()
}

// Params holds dependencies for the dispatcher
type Params struct {
	State    *state.State
	Service  usecase.BookExchangeUsecase
	Loop     *loop.Loop
	Router   *router.Router
	Renderer *view.Renderer
	// Reporter is nil when the configured location provider does not take host answers.
	Reporter  LocationReporter
	Validator *validator.Validate
	Logger    *slog.Logger
}

type route struct {
	decode func(raw []byte) (Intent, error)
	handle func(Intent) error
}

// Dispatcher routes intents to their handlers. Dispatch must run on the loop.
type Dispatcher struct {
	state     *state.State
	service   usecase.BookExchangeUsecase
	loop      *loop.Loop
	router    *router.Router
	renderer  *view.Renderer
	reporter  LocationReporter
	validator *validator.Validate
	logger    *slog.Logger

	routes map[string]route
}

// New creates a dispatcher with every intent registered.
func New(params Params) *Dispatcher {
	v := params.Validator
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Dispatcher{
		state:     params.State,
		service:   params.Service,
		loop:      params.Loop,
		router:    params.Router,
		renderer:  params.Renderer,
		reporter:  params.Reporter,
		validator: v,
		logger:    logger.With(slog.String("component", "handler")),
		routes:    make(map[string]route),
	}

	register(d, d.navigate)
	register(d, d.hashChange)
	register(d, d.submitLogin)
	register(d, d.submitSignup)
	register(d, d.logout)
	register(d, d.filterBooks)
	register(d, d.openDetail)
	register(d, d.openAddBook)
	register(d, d.closeOverlay)
	register(d, d.submitAddBook)
	register(d, d.requestDelete)
	register(d, d.contactOwner)
	register(d, d.dismissNotice)
	register(d, d.reportLocation)

	return d
}

func register[T Intent](d *Dispatcher, handle func(T) error) {
	var zero T
	d.routes[zero.Name()] = route{
		decode: func(raw []byte) (Intent, error) {
			var intent T
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &intent); err != nil {
					return nil, domainerrors.ErrValidationRequired.WithDetails(err.Error())
				}
			}

			return intent, nil
		},
		handle: func(intent Intent) error {
			return handle(intent.(T))
		},
	}
}

// Names lists the registered intent names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.routes))
	for name := range d.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Decode builds the intent called name from its JSON payload.
func (d *Dispatcher) Decode(name string, raw []byte) (Intent, error) {
	r, ok := d.routes[name]
	if !ok {
		return nil, domainerrors.ErrUnknownIntent.WithDetails(name)
	}

	return r.decode(raw)
}

// Dispatch runs the handler of intent. Failures the user should see are
// rendered; only malformed intents return an error.
func (d *Dispatcher) Dispatch(intent Intent) error {
	r, ok := d.routes[intent.Name()]
	if !ok {
		return domainerrors.ErrUnknownIntent.WithDetails(intent.Name())
	}

	d.logger.Debug("Dispatching intent", slog.String("intent", intent.Name()))

	return r.handle(intent)
}

func (d *Dispatcher) validate(intent any) error {
	err := d.validator.Struct(intent)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}

		return domainerrors.ErrValidationRequired.WithDetails(strings.Join(fields, ","))
	}

	return errors.Wrap(err, "validate intent")
}

func (d *Dispatcher) navigate(in Navigate) error {
	d.router.Navigate(in.Target)

	return nil
}

func (d *Dispatcher) hashChange(in HashChange) error {
	d.router.HashChanged(in.Fragment)

	return nil
}

func (d *Dispatcher) submitLogin(in SubmitLogin) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := d.validate(in); err != nil {
		d.renderer.SetLoginError(domainerrors.ErrValidationRequired.Message())

		return nil
	}

	loop.Suspend(d.loop, func(ctx context.Context) (*entity.User, error) {
		return d.service.Login(ctx, in.Email)
	}, func(user *entity.User, err error) {
		if err != nil {
			d.logger.Warn("Login failed", slog.String("error", err.Error()))
			d.renderer.SetLoginError(domainerrors.ErrLoginFailed.Message())

			return
		}

		d.state.CurrentUser = user
		d.router.Navigate("")
	})

	return nil
}

func (d *Dispatcher) submitSignup(in SubmitSignup) error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if err := d.validate(in); err != nil {
		d.renderer.SetSignupError(domainerrors.ErrValidationRequired.Message())

		return nil
	}

	loop.Suspend(d.loop, func(ctx context.Context) (*entity.User, error) {
		return d.service.Signup(ctx, in.FullName, in.Email)
	}, func(user *entity.User, err error) {
		if err != nil {
			d.logger.Warn("Signup failed", slog.String("error", err.Error()))
			d.renderer.SetSignupError(domainerrors.MessageOf(err))

			return
		}

		d.state.CurrentUser = user
		d.router.Navigate("")
	})

	return nil
}

func (d *Dispatcher) logout(Logout) error {
	loop.Suspend(d.loop, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, d.service.Logout(ctx)
	}, func(_ struct{}, err error) {
		if err != nil {
			d.logger.Warn("Logout failed", slog.String("error", err.Error()))
			d.renderer.ShowNotice(domainerrors.MessageOf(err))

			return
		}

		d.state.CurrentUser = nil
		d.router.Navigate("")
	})

	return nil
}

func (d *Dispatcher) filterBooks(in FilterBooks) error {
	d.renderer.SetFilter(in.Query, in.ExchangeType)

	return nil
}

func (d *Dispatcher) openDetail(in OpenDetail) error {
	if !d.renderer.OpenDetail(in.BookID) {
		d.logger.Debug("Detail requested for a book not on screen", slog.String("bookId", in.BookID))
	}

	return nil
}

func (d *Dispatcher) openAddBook(OpenAddBook) error {
	d.renderer.OpenAddBook()

	return nil
}

func (d *Dispatcher) closeOverlay(CloseOverlay) error {
	d.renderer.CloseOverlay()

	return nil
}

func (d *Dispatcher) submitAddBook(in SubmitAddBook) error {
	user := d.state.CurrentUser
	if user == nil {
		d.renderer.ShowNotice(domainerrors.ErrAuthRequired.Message())

		return nil
	}

	seq := d.renderer.OverlaySeq()
	input := in.CreateBookInput
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.CoverImageURL = strings.TrimSpace(input.CoverImageURL)
	input.Description = strings.TrimSpace(input.Description)
	if err := d.validate(input); err != nil {
		d.renderer.SetAddBookError(seq, domainerrors.ErrValidationRequired.Message())

		return nil
	}

	owner := user.Snapshot()
	if loc := d.state.ListingLocation(); loc != nil {
		copied := *loc
		owner.Location = &copied
	}

	loop.Suspend(d.loop, func(ctx context.Context) (*entity.Book, error) {
		return d.service.CreateBook(ctx, &input, owner)
	}, func(_ *entity.Book, err error) {
		if err != nil {
			d.logger.Warn("Create book failed", slog.String("error", err.Error()))
			d.renderer.SetAddBookError(seq, domainerrors.MessageOf(err))

			return
		}

		d.renderer.CloseOverlayIf(seq)
		d.reloadBooks()
	})

	return nil
}

func (d *Dispatcher) reloadBooks() {
	loop.Suspend(d.loop, d.service.GetBooks, func(books []*entity.Book, err error) {
		if err != nil {
			d.logger.Warn("Reload books failed", slog.String("error", err.Error()))
			d.renderer.ShowNotice(domainerrors.MessageOf(err))

			return
		}

		d.state.Books = books
		d.renderer.RefreshBookList()
	})
}

func (d *Dispatcher) requestDelete(in RequestDelete) error {
	viewer := d.state.CurrentUser
	if viewer == nil {
		d.renderer.ShowNotice(domainerrors.ErrAuthRequired.Message())

		return nil
	}
	if !in.Confirmed {
		return nil
	}

	seq := d.renderer.OverlaySeq()
	loop.Suspend(d.loop, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, d.service.DeleteBook(ctx, in.BookID, viewer.ID)
	}, func(_ struct{}, err error) {
		if err != nil {
			d.logger.Warn("Delete book failed",
				slog.String("bookId", in.BookID),
				slog.String("error", err.Error()),
			)
			d.renderer.ShowNotice(domainerrors.MessageOr(err, deleteFallbackMessage))

			return
		}

		d.state.RemoveBook(in.BookID)
		if in.FromOverlay {
			d.renderer.CloseOverlayIf(seq)
		}

		if d.state.CurrentPage == state.PageProfile {
			d.renderer.RepaintProfile()
		} else {
			d.renderer.RefreshBookList()
		}
	})

	return nil
}

func (d *Dispatcher) contactOwner(in ContactOwner) error {
	book := d.renderer.OverlayBook()
	if book == nil || (in.BookID != "" && book.ID != in.BookID) {
		book = d.findBook(in.BookID)
	}
	if book == nil {
		return nil
	}

	d.renderer.ShowNotice(contactingPrefix + book.Owner.Name + "...")

	return nil
}

func (d *Dispatcher) findBook(id string) *entity.Book {
	if id == "" {
		return nil
	}

	for _, list := range [][]*entity.Book{d.state.Books, d.renderer.ProfileBooks()} {
		for _, b := range list {
			if b.ID == id {
				return b
			}
		}
	}

	return nil
}

func (d *Dispatcher) dismissNotice(DismissNotice) error {
	d.renderer.DismissNotice()

	return nil
}

func (d *Dispatcher) reportLocation(in ReportLocation) error {
	if d.reporter == nil {
		d.logger.Debug("Location report ignored, provider does not accept host answers")

		return nil
	}

	if in.Denied {
		d.reporter.Deny()

		return nil
	}

	if err := d.reporter.Report(entity.Location{Lat: in.Lat, Lng: in.Lng}); err != nil {
		return domainerrors.ErrValidationRequired.WithDetails(err.Error())
	}

	return nil
}
