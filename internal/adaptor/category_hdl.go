package adaptor

import (
	"net/http"

	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	service usecase.CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.With(zap.String("handler", "category")),
	}
}

// List handles GET /categories/
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.log.Error("Failed to list categories", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponsePage(w, r, http.StatusOK, "success", page, nil)
}
