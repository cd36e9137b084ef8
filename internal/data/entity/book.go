package entity

import (
	"math"

	"github.com/google/uuid"
)

type Book struct {
	BaseSimple
	Title       string     `db:"title"`
	Author      string     `db:"author"`
	CategoryID  *uuid.UUID `db:"category_id"`
	Cover       *string    `db:"cover"`
	Description string     `db:"description"`

	// Populated by joins
	Category *Category     `db:"-"`
	Ratings  RatingSummary `db:"-"`
}

// URL returns the canonical detail address of the book.
func (b *Book) URL() string {
	return BookURL(b.ID)
}

func BookURL(id uuid.UUID) string {
	return "/book/" + id.String() + "/"
}

// AverageRating is the mean review rating rounded to two decimals, 0 without reviews.
func (b *Book) AverageRating() float64 {
	return b.Ratings.Average()
}

func (b *Book) ReviewsCount() int64 {
	return b.Ratings.Count
}

// RatingSummary is the exact aggregate of a book's review ratings.
type RatingSummary struct {
	Sum   int64 `db:"rating_sum"`
	Count int64 `db:"rating_count"`
}

func (s RatingSummary) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return math.Round(float64(s.Sum)/float64(s.Count)*100) / 100
}
