package entity

import (
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseSimple
	BookID  uuid.UUID `db:"book_id"`
	UserID  uuid.UUID `db:"user_id"`
	Comment string    `db:"comment"`
	Rating  int       `db:"rating"` // 1-5

	// Populated by joins
	Username string `db:"-"`
}
