package adaptor

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the cover size limit
const formOverheadBytes = 1 << 20

type BookHandler struct {
	books          usecase.BookService
	reviews        usecase.ReviewService
	maxUploadBytes int64
	log            *zap.Logger
}

func NewBookHandler(books usecase.BookService, reviews usecase.ReviewService, maxUploadBytes int64, log *zap.Logger) *BookHandler {
	return &BookHandler{
		books:          books,
		reviews:        reviews,
		maxUploadBytes: maxUploadBytes,
		log:            log.With(zap.String("handler", "book")),
	}
}

// List handles GET /
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	req := request.NewBookListRequest(r.URL.Query())

	page, err := h.books.ListBooks(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list books")
		return
	}

	utils.ResponsePage(w, r, http.StatusOK, "success", page, nil)
}

// Detail handles GET /book/{id}/
func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	page, err := h.books.GetBookDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get book detail")
		return
	}

	utils.ResponsePage(w, r, http.StatusOK, "success", page, nil)
}

// PostReview handles POST /book/{id}/
func (h *BookHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return
	}
	req := request.NewReviewRequest(r.PostForm)
	caller := utils.GetCallerFromContext(r.Context())

	review, err := h.reviews.SubmitReview(r.Context(), caller, bookID, req)
	if err == nil {
		utils.AddFlash(w, r, utils.FlashSuccess, msgReviewPosted)
		utils.Redirect(w, r, review.BookURL)
		return
	}

	form := response.ReviewForm{Comment: req.Comment, Rating: req.Rating}

	if fields, ok := validationFields(err); ok {
		h.renderDetail(w, r, bookID, http.StatusBadRequest, msgFixErrors, form, fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.AddFlash(w, r, utils.FlashError, msgLoginToReview)
		utils.Redirect(w, r, utils.LoginURL(r.URL.Path))

	case errors.Is(err, usecase.ErrAlreadyReviewed):
		h.renderDetail(w, r, bookID, http.StatusConflict, msgAlreadyReviewed, form, nil)

	default:
		h.handleServiceError(w, err, "post review")
	}
}

// AddBookForm handles GET /add-book/
func (h *BookHandler) AddBookForm(w http.ResponseWriter, r *http.Request) {
	page, err := h.books.GetAddBookPage(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get add book page")
		return
	}

	utils.ResponsePage(w, r, http.StatusOK, "success", page, nil)
}

// AddBook handles POST /add-book/
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	cover, fields, err := h.parseBookForm(w, r)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return
	}

	req := request.NewCreateBookRequest(r.Form, cover)
	form := response.BookForm{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
	}

	if fields != nil {
		h.renderAddBook(w, r, http.StatusBadRequest, form, fields)
		return
	}

	book, err := h.books.CreateBook(r.Context(), utils.GetCallerFromContext(r.Context()), req)
	if err == nil {
		utils.AddFlash(w, r, utils.FlashSuccess, msgBookAdded)
		utils.Redirect(w, r, book.URL)
		return
	}

	if fields, ok := validationFields(err); ok {
		h.renderAddBook(w, r, http.StatusBadRequest, form, fields)
		return
	}

	h.handleServiceError(w, err, "add book")
}

// parseBookForm reads urlencoded or multipart bodies. An oversized upload is
// reported as a cover field error rather than a transport error.
func (h *BookHandler) parseBookForm(w http.ResponseWriter, r *http.Request) (*request.CoverFile, map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return nil, nil, r.ParseForm()
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes + formOverheadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, map[string]string{"cover": h.tooLargeMessage()}, nil
		}
		return nil, nil, err
	}

	file, header, err := r.FormFile("cover")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}

	return &request.CoverFile{Filename: header.Filename, Data: data}, nil, nil
}

func (h *BookHandler) tooLargeMessage() string {
	return fmt.Sprintf("Ensure this file is no larger than %d MB.", h.maxUploadBytes>>20)
}

func (h *BookHandler) renderDetail(w http.ResponseWriter, r *http.Request, bookID string, code int, message string, form response.ReviewForm, fields map[string]string) {
	page, err := h.books.GetBookDetail(r.Context(), bookID)
	if err != nil {
		h.handleServiceError(w, err, "get book detail")
		return
	}
	page.Form = form

	utils.ResponsePage(w, r, code, message, page, fields)
}

func (h *BookHandler) renderAddBook(w http.ResponseWriter, r *http.Request, code int, form response.BookForm, fields map[string]string) {
	page, err := h.books.GetAddBookPage(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get add book page")
		return
	}
	page.Form = form

	utils.ResponsePage(w, r, code, msgFixErrors, page, fields)
}

// handleServiceError handles errors for book operations
func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound):
		h.log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Book not found")

	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, msgForbidden)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseJSON(w, http.StatusUnauthorized, false, "Authentication required", nil, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
