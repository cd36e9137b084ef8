package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, caller utils.Caller, bookID string, req request.ReviewRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// SubmitReview checks, in order, that the book exists, the caller is signed
// in and the form is valid. The store decides duplicates.
func (s *reviewService) SubmitReview(ctx context.Context, caller utils.Caller, bookID string, req request.ReviewRequest) (*response.ReviewResponse, error) {
	book, err := findBook(ctx, s.repo, bookID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}

	valid, errs := req.Validate()
	if len(errs) > 0 {
		s.log.Debug("Review validation failed",
			zap.String("book_id", bookID),
			zap.Any("errors", errs),
		)
		return nil, newValidationError(errs)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookID:   book.ID,
		UserID:   caller.UserID,
		Comment:  valid.Comment,
		Rating:   valid.Rating,
		Username: caller.Username,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Info("Duplicate review rejected",
				zap.String("book_id", bookID),
				zap.String("user_id", caller.UserID.String()),
			)
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("book_id", bookID),
		zap.String("user_id", caller.UserID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}
