package impl

import (
	"context"

	"bookswap/internal/domain/entity"
	"bookswap/internal/errors"
	"bookswap/internal/infra/persistence/store"
)

// Storage keys shared with the browser client's localStorage layout.
const (
	UsersKey   = "users"
	BooksKey   = "books"
	SessionKey = "currentUserId"
)

// SeedUsers returns the users every fresh store starts with.
func SeedUsers() []entity.User {
	return []entity.User{
		{ID: "u1", Name: "Ravi", Email: "ravi@example.com", Rating: 4.7, Location: &entity.Location{Lat: 12.9716, Lng: 77.5946}},
		{ID: "u2", Name: "Meena", Email: "meena@example.com", Rating: 4.9, Location: &entity.Location{Lat: 13.0827, Lng: 80.2707}},
	}
}

// SeedBooks returns the listings every fresh store starts with.
func SeedBooks() []entity.Book {
	users := SeedUsers()
	ravi, meena := users[0], users[1]

	return []entity.Book{
		{
			ID:            "1",
			Title:         "The Alchemist",
			Author:        "Paulo Coelho",
			CoverImageURL: "https://covers.openlibrary.org/b/id/12692298-L.jpg",
			ExchangeType:  entity.ExchangeSwap,
			Status:        entity.BookStatusAvailable,
			Description:   "A fable about following your dream.",
			Owner:         ravi.Snapshot(),
		},
		{
			ID:            "2",
			Title:         "Clean Code",
			Author:        "Robert C. Martin",
			CoverImageURL: "https://covers.openlibrary.org/b/id/8233342-L.jpg",
			ExchangeType:  entity.ExchangeSell,
			Status:        entity.BookStatusAvailable,
			Description:   "A handbook of agile software craftsmanship.",
			Owner:         meena.Snapshot(),
		},
		{
			ID:            "3",
			Title:         "Sapiens",
			Author:        "Yuval Noah Harari",
			CoverImageURL: "https://covers.openlibrary.org/b/id/10332812-L.jpg",
			ExchangeType:  entity.ExchangeGiveAway,
			Status:        entity.BookStatusAvailable,
			Description:   "A brief history of humankind.",
			Owner:         ravi.Snapshot(),
		},
	}
}

// Seed writes the initial users and books into s unless they are already present.
func Seed(ctx context.Context, s *store.Store) error {
	if _, err := store.NewCollection[entity.User](s, UsersKey).InitializeIfAbsent(ctx, SeedUsers()); err != nil {
		return errors.Wrap(err, "seed users")
	}

	if _, err := store.NewCollection[entity.Book](s, BooksKey).InitializeIfAbsent(ctx, SeedBooks()); err != nil {
		return errors.Wrap(err, "seed books")
	}

	return nil
}
