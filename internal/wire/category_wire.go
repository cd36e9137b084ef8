package wire

import (
	"library-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler) {
	r.Get("/categories/", categoryHandler.List)
}
