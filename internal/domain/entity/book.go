// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// ExchangeType is the mode in which an owner offers a book.
type ExchangeType string

const (
	// ExchangeSwap offers the book in exchange for another book.
	ExchangeSwap ExchangeType = "Swap"
	// ExchangeGiveAway offers the book for free.
	ExchangeGiveAway ExchangeType = "GiveAway"
	// ExchangeSell offers the book for money.
	ExchangeSell ExchangeType = "Sell"
)

// ExchangeTypes lists every exchange type in display order.
var ExchangeTypes = []ExchangeType{ExchangeSwap, ExchangeGiveAway, ExchangeSell}

// String returns the string representation of the ExchangeType.
func (t ExchangeType) String() string {
	return string(t)
}

// IsValid checks if the ExchangeType is a valid value.
func (t ExchangeType) IsValid() bool {
	return slices.Contains(ExchangeTypes, t)
}

// BookStatus is the availability of a listing.
type BookStatus string

// BookStatusAvailable is the only status a listing can have.
const BookStatusAvailable BookStatus = "Available"

// Book is a physical book listed by its owner.
// Owner is a copy of the owning user taken when the book was listed; it is never refreshed.
type Book struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	CoverImageURL string       `json:"coverImageUrl,omitempty"`
	ExchangeType  ExchangeType `json:"exchangeType"`
	Status        BookStatus   `json:"status"`
	Description   string       `json:"description,omitempty"`
	Owner         User         `json:"owner"`
}

// GetID returns the book ID.
func (b *Book) GetID() string {
	return b.ID
}

// SetID assigns the book ID.
func (b *Book) SetID(id string) {
	b.ID = id
}

// OwnedBy reports whether the user with the given ID listed this book.
func (b *Book) OwnedBy(userID string) bool {
	return userID != "" && b.Owner.ID == userID
}

// Initials returns the cover placeholder text: the first letters of the first two title words.
func (b *Book) Initials() string {
	words := strings.Fields(b.Title)
	if len(words) > 2 {
		words = words[:2]
	}

	var initials strings.Builder
	for _, word := range words {
		initials.WriteString(strings.ToUpper(string([]rune(word)[0])))
	}

	return initials.String()
}
