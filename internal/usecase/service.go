package usecase

import (
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

// BooksPerPage is the listing page size
const BooksPerPage = 6

type Service struct {
	Auth     AuthService
	User     UserService
	Book     BookService
	Category CategoryService
	Review   ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, covers storage.CoverStorage, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config.Session, log),
		User:     NewUserService(repo, log),
		Book:     NewBookService(repo, covers, config.Storage.MaxUploadBytes(), log),
		Category: NewCategoryService(repo, log),
		Review:   NewReviewService(repo, log),
	}
}
