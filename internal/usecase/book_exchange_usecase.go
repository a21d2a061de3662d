package usecase

import (
	"context"

	"bookswap/internal/domain/entity"
)

// CreateBookInput represents the input for listing a new book
type CreateBookInput struct {
	Title         string              `json:"title" validate:"required"`
	Author        string              `json:"author" validate:"required"`
	CoverImageURL string              `json:"coverImageUrl,omitempty" validate:"omitempty,url"`
	ExchangeType  entity.ExchangeType `json:"exchangeType" validate:"required,oneof=Swap GiveAway Sell"`
	Description   string              `json:"description,omitempty"`
}

// BookExchangeUsecase is the remote service the client talks to. Every call is
// subject to simulated latency and may block until it elapses.
type BookExchangeUsecase interface {
	// Login finds the user with the exact email or registers a new one, then opens a session.
	Login(ctx context.Context, email string) (*entity.User, error)

	// Signup registers a new user and opens a session. Fails with ErrAlreadyExists for a known email.
	Signup(ctx context.Context, name, email string) (*entity.User, error)

	// Logout closes the session. Idempotent.
	Logout(ctx context.Context) error

	// GetCurrentUser returns the session user, or nil when there is no live session.
	GetCurrentUser(ctx context.Context) (*entity.User, error)

	// GetBooks returns every listing, most recently created first.
	GetBooks(ctx context.Context) ([]*entity.Book, error)

	// CreateBook lists a book owned by the given user snapshot.
	CreateBook(ctx context.Context, input *CreateBookInput, owner entity.User) (*entity.Book, error)

	// DeleteBook removes a listing on behalf of requesterID, who must own it.
	DeleteBook(ctx context.Context, bookID, requesterID string) error

	// GetBooksByOwner returns the listings owned by userID in stored order.
	GetBooksByOwner(ctx context.Context, userID string) ([]*entity.Book, error)
}
