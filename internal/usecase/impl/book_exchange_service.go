package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"bookswap/internal/domain/entity"
	domainerrors "bookswap/internal/domain/errors"
	"bookswap/internal/domain/repository"
	"bookswap/internal/errors"
	"bookswap/internal/infra/persistence/store"
	"bookswap/internal/usecase"

	"go.uber.org/fx"
)

// BookExchangeServiceParams holds dependencies for the book exchange service
type BookExchangeServiceParams struct {
	fx.In

	Store   *store.Store
	Delayer Delayer
	Logger  *slog.Logger
}

type bookExchangeService struct {
	store   *store.Store
	users   *store.Collection[entity.User, *entity.User]
	books   *store.Collection[entity.Book, *entity.Book]
	delayer Delayer
	logger  *slog.Logger

	// mu makes find-or-create and check-and-remove sequences atomic.
	mu sync.Mutex
}

// NewBookExchangeService creates a new book exchange service over the given store
func NewBookExchangeService(params BookExchangeServiceParams) usecase.BookExchangeUsecase {
	delayer := params.Delayer
	if delayer == nil {
		delayer = NoDelay{}
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &bookExchangeService{
		store:   params.Store,
		users:   store.NewCollection[entity.User](params.Store, UsersKey),
		books:   store.NewCollection[entity.Book](params.Store, BooksKey),
		delayer: delayer,
		logger:  logger.With(slog.String("component", "book_exchange")),
	}
}

// Login finds the user by exact email or registers one named after the email's local part
func (s *bookExchangeService) Login(ctx context.Context, email string) (*entity.User, error) {
	if err := s.delayer.Wait(ctx, OpLogin); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.findUserByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrRecordNotFound):
		user, err = s.users.Create(ctx, &entity.User{
			Name:   localPart(email),
			Email:  email,
			Rating: entity.DefaultRating,
		})
		if err != nil {
			return nil, domainerrors.NewStorageError(err, "create user on login")
		}
		s.logger.InfoContext(ctx, "User registered on login", slog.String("userId", user.ID))
	default:
		return nil, err
	}

	if err := s.openSession(ctx, user.ID); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Login succeeded", slog.String("userId", user.ID))

	return user, nil
}

// Signup registers a new user unless the email is taken
func (s *bookExchangeService) Signup(ctx context.Context, name, email string) (*entity.User, error) {
	if err := s.delayer.Wait(ctx, OpSignup); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.findUserByEmail(ctx, email)
	if err == nil {
		s.logger.WarnContext(ctx, "Signup rejected, email taken")

		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.users.Create(ctx, &entity.User{
		Name:   name,
		Email:  email,
		Rating: entity.DefaultRating,
	})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "create user on signup")
	}

	if err := s.openSession(ctx, user.ID); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User signed up", slog.String("userId", user.ID))

	return user, nil
}

// Logout clears the stored session
func (s *bookExchangeService) Logout(ctx context.Context) error {
	if err := s.delayer.Wait(ctx, OpLogout); err != nil {
		return err
	}

	if err := s.store.ClearValue(ctx, SessionKey); err != nil {
		return domainerrors.NewStorageError(err, "clear session")
	}

	return nil
}

// GetCurrentUser resolves the stored session id to a user
func (s *bookExchangeService) GetCurrentUser(ctx context.Context) (*entity.User, error) {
	if err := s.delayer.Wait(ctx, OpGetCurrentUser); err != nil {
		return nil, err
	}

	userID, ok, err := s.store.ReadValue(ctx, SessionKey)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "read session")
	}
	if !ok {
		return nil, nil
	}

	user, err := s.users.ReadByID(ctx, userID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		s.logger.WarnContext(ctx, "Session names an unknown user", slog.String("userId", userID))
		if err := s.store.ClearValue(ctx, SessionKey); err != nil {
			return nil, domainerrors.NewStorageError(err, "clear stale session")
		}

		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "read session user")
	}

	return user, nil
}

// GetBooks returns every listing, newest first
func (s *bookExchangeService) GetBooks(ctx context.Context) ([]*entity.Book, error) {
	if err := s.delayer.Wait(ctx, OpGetBooks); err != nil {
		return nil, err
	}

	books, err := s.books.ReadAll(ctx)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "read books")
	}

	return books, nil
}

// CreateBook stores a new available listing with the owner snapshot as given
func (s *bookExchangeService) CreateBook(ctx context.Context, input *usecase.CreateBookInput, owner entity.User) (*entity.Book, error) {
	if err := s.delayer.Wait(ctx, OpCreateBook); err != nil {
		return nil, err
	}
	if !input.ExchangeType.IsValid() {
		return nil, domainerrors.ErrValidationRequired.WithDetails("exchangeType")
	}

	book, err := s.books.Create(ctx, &entity.Book{
		Title:         input.Title,
		Author:        input.Author,
		CoverImageURL: input.CoverImageURL,
		ExchangeType:  input.ExchangeType,
		Status:        entity.BookStatusAvailable,
		Description:   input.Description,
		Owner:         owner.Snapshot(),
	})
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "create book")
	}

	s.logger.InfoContext(ctx, "Book listed",
		slog.String("bookId", book.ID),
		slog.String("ownerId", owner.ID),
	)

	return book, nil
}

// DeleteBook removes a listing after checking it exists and belongs to the requester
func (s *bookExchangeService) DeleteBook(ctx context.Context, bookID, requesterID string) error {
	if err := s.delayer.Wait(ctx, OpDeleteBook); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.books.ReadByID(ctx, bookID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return domainerrors.ErrBookNotFound.WithDetails(bookID)
	}
	if err != nil {
		return domainerrors.NewStorageError(err, "read book")
	}

	if book.Owner.ID != requesterID {
		s.logger.WarnContext(ctx, "Delete rejected, requester is not the owner",
			slog.String("bookId", bookID),
			slog.String("requesterId", requesterID),
		)

		return domainerrors.ErrNotAuthorized
	}

	removed, err := s.books.Remove(ctx, bookID)
	if err != nil {
		return domainerrors.NewStorageError(err, "remove book")
	}
	if !removed {
		return domainerrors.ErrDeleteFailed
	}

	s.logger.InfoContext(ctx, "Book deleted", slog.String("bookId", bookID))

	return nil
}

// GetBooksByOwner returns the listings whose owner snapshot carries userID
func (s *bookExchangeService) GetBooksByOwner(ctx context.Context, userID string) ([]*entity.Book, error) {
	if err := s.delayer.Wait(ctx, OpGetBooksByOwner); err != nil {
		return nil, err
	}

	books, err := s.books.Filter(ctx, func(b *entity.Book) bool { return b.Owner.ID == userID })
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "read owner books")
	}

	return books, nil
}

func (s *bookExchangeService) findUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.users.FindOne(ctx, func(u *entity.User) bool { return u.Email == email })
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, domainerrors.NewStorageError(err, "read users")
	}

	return user, err
}

func (s *bookExchangeService) openSession(ctx context.Context, userID string) error {
	if err := s.store.WriteValue(ctx, SessionKey, userID); err != nil {
		return domainerrors.NewStorageError(err, "write session")
	}

	return nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")

	return name
}
