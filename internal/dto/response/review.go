package response

import (
	"time"

	"library-catalog/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	BookURL   string    `json:"book_url"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewForm echoes the review form back to the client
type ReviewForm struct {
	Comment string `json:"comment"`
	Rating  string `json:"rating"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		BookID:    review.BookID.String(),
		BookURL:   entity.BookURL(review.BookID),
		UserID:    review.UserID.String(),
		Username:  review.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}
