package wire

import (
	"library-catalog/internal/adaptor"
	"library-catalog/internal/policy"
	"library-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBook(r chi.Router, bookHandler *adaptor.BookHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", bookHandler.List)
	r.Get("/book/{id}/", bookHandler.Detail)

	// Anonymous posts are answered with a login redirect by the handler
	r.Post("/book/{id}/", bookHandler.PostReview)

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(policy.IsActiveStaff, log))

		r.Get("/add-book/", bookHandler.AddBookForm)
		r.Post("/add-book/", bookHandler.AddBook)
	})
}
