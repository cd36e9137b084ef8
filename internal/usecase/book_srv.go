package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/policy"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookService interface {
	ListBooks(ctx context.Context, req request.BookListRequest) (*response.BookListPage, error)
	GetBookDetail(ctx context.Context, bookID string) (*response.BookDetailPage, error)
	GetAddBookPage(ctx context.Context) (*response.AddBookPage, error)
	CreateBook(ctx context.Context, caller utils.Caller, req request.CreateBookRequest) (*response.BookResponse, error)
}

type bookService struct {
	repo           *repository.Repository
	covers         storage.CoverStorage
	maxUploadBytes int64
	log            *zap.Logger
}

func NewBookService(repo *repository.Repository, covers storage.CoverStorage, maxUploadBytes int64, log *zap.Logger) BookService {
	return &bookService{
		repo:           repo,
		covers:         covers,
		maxUploadBytes: maxUploadBytes,
		log:            log.With(zap.String("service", "book")),
	}
}

func (s *bookService) ListBooks(ctx context.Context, req request.BookListRequest) (*response.BookListPage, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	page := &response.BookListPage{
		Books:            []response.BookResponse{},
		Categories:       response.CategoriesToResponse(categories),
		Query:            req.Query,
		SelectedCategory: req.Category,
	}

	categoryID, ok := req.CategoryID()
	if !ok {
		// An unparseable category names nothing, so nothing matches
		page.Pagination = response.NewPaginationMeta(1, BooksPerPage, 0)
		return page, nil
	}

	filter := repository.BookFilter{Query: req.Query, CategoryID: categoryID}

	total, err := s.repo.Book.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	current := utils.ClampPage(req.Page, total, BooksPerPage)
	offset := utils.CalculateOffset(current, BooksPerPage)

	if total > 0 {
		books, err := s.repo.Book.FindAll(ctx, filter, BooksPerPage, offset)
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		page.Books = response.BooksToResponse(books)
	}

	page.Pagination = response.NewPaginationMeta(current, BooksPerPage, total)

	s.log.Debug("Books listed",
		zap.String("q", req.Query),
		zap.String("category", req.Category),
		zap.Int("page", current),
		zap.Int64("total", total),
	)

	return page, nil
}

func (s *bookService) GetBookDetail(ctx context.Context, bookID string) (*response.BookDetailPage, error) {
	book, err := findBook(ctx, s.repo, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByBookID(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of book %s: %w", book.ID.String(), err)
	}

	return &response.BookDetailPage{
		Book:    response.BookToResponse(book),
		Reviews: response.ReviewsToResponse(reviews),
		Form:    response.ReviewForm{},
	}, nil
}

func (s *bookService) GetAddBookPage(ctx context.Context) (*response.AddBookPage, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &response.AddBookPage{
		Categories: response.CategoriesToResponse(categories),
	}, nil
}

func (s *bookService) CreateBook(ctx context.Context, caller utils.Caller, req request.CreateBookRequest) (*response.BookResponse, error) {
	if !caller.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if !policy.IsActiveStaff(caller) {
		s.log.Warn("Add book rejected by policy", zap.String("user_id", caller.UserID.String()))
		return nil, ErrForbidden
	}

	errs := req.Validate()
	if errs == nil {
		errs = make(map[string]string)
	}

	// Category must reference an existing row
	var category *entity.Category
	if _, invalid := errs["category"]; !invalid {
		if categoryID := req.CategoryID(); categoryID != nil {
			found, err := s.repo.Category.FindByID(ctx, *categoryID)
			if err != nil {
				return nil, fmt.Errorf("find category %s: %w", categoryID.String(), err)
			}
			if found == nil {
				errs["category"] = "Select a valid choice."
			}
			category = found
		}
	}

	var contentType, extension string
	if req.Cover != nil {
		var msg string
		contentType, extension, msg = s.inspectCover(req.Cover)
		if msg != "" {
			errs["cover"] = msg
		}
	}

	if len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	book := &entity.Book{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    category,
	}
	if category != nil {
		book.CategoryID = &category.ID
	}

	var objectPath string
	if req.Cover != nil {
		objectPath = path.Join("covers", book.ID.String()+extension)
		url, err := s.covers.Save(ctx, objectPath, contentType, req.Cover.Data)
		if err != nil {
			s.log.Error("Failed to store cover",
				zap.Error(err),
				zap.String("book_id", book.ID.String()),
			)
			return nil, fmt.Errorf("store cover: %w", err)
		}
		book.Cover = &url
	}

	if err := s.repo.Book.Create(ctx, book); err != nil {
		if objectPath != "" {
			s.discardCover(ctx, objectPath)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.Info("Book created",
		zap.String("book_id", book.ID.String()),
		zap.String("title", book.Title),
		zap.String("created_by", caller.Username),
	)

	resp := response.BookToResponse(book)
	return &resp, nil
}

// inspectCover sniffs the upload and returns its content type and file
// extension, or a field message when it cannot be used as a cover
func (s *bookService) inspectCover(cover *request.CoverFile) (string, string, string) {
	if len(cover.Data) == 0 {
		return "", "", "The submitted file is empty."
	}
	if s.maxUploadBytes > 0 && int64(len(cover.Data)) > s.maxUploadBytes {
		return "", "", fmt.Sprintf("Ensure this file is no larger than %d MB.", s.maxUploadBytes>>20)
	}

	mtype := mimetype.Detect(cover.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		s.log.Debug("Rejected cover upload",
			zap.String("filename", cover.Filename),
			zap.String("detected", mtype.String()),
		)
		return "", "", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}

	return mtype.String(), mtype.Extension(), ""
}

// discardCover removes a cover whose book row was never written
func (s *bookService) discardCover(ctx context.Context, objectPath string) {
	// the request context may already be canceled
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.covers.Delete(ctx, objectPath); err != nil {
		s.log.Error("Failed to remove orphaned cover",
			zap.Error(err),
			zap.String("object", objectPath),
		)
	}
}

// findBook maps malformed and unknown ids to ErrBookNotFound
func findBook(ctx context.Context, repo *repository.Repository, bookID string) (*entity.Book, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, ErrBookNotFound
	}

	book, err := repo.Book.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find book %s: %w", bookID, err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	return book, nil
}
