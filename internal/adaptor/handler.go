package adaptor

import (
	"errors"
	"net/http"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgReviewPosted       = "Review posted."
	msgLoginToReview      = "You must be logged in to post a review."
	msgAlreadyReviewed    = "You have already reviewed this book."
	msgBookAdded          = "Book added."
	msgRegistered         = "Registration successful. You are logged in."
	msgInvalidCredentials = "Please enter a correct username and password."
	msgInactiveAccount    = "This account is inactive."
	msgFixErrors          = "Please correct the errors below."
	msgForbidden          = "You do not have permission to access this page."
)

type Handler struct {
	Auth     *AuthHandler
	Book     *BookHandler
	Category *CategoryHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, config.Session, log),
		Book:     NewBookHandler(service.Book, service.Review, config.Storage.MaxUploadBytes(), log),
		Category: NewCategoryHandler(service.Category, log),
	}
}

func clientInfo(r *http.Request) request.ClientInfo {
	return request.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: utils.ClientIP(r),
	}
}

// validationFields extracts per-field messages from a service error
func validationFields(err error) (map[string]string, bool) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
