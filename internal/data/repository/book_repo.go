package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-catalog/internal/data/entity"
	"library-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	FindAll(ctx context.Context, filter BookFilter, limit, offset int) ([]*entity.Book, error)
	Count(ctx context.Context, filter BookFilter) (int64, error)
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

// bookSelect joins the category and the exact rating aggregate of each book
const bookSelect = `
	SELECT b.id, b.title, b.author, b.category_id, c.name, b.cover, b.description, b.created_at,
	       COALESCE(s.rating_sum, 0), COALESCE(s.rating_count, 0)
	FROM books b
	LEFT JOIN categories c ON c.id = b.category_id
	LEFT JOIN (
		SELECT book_id, SUM(rating) AS rating_sum, COUNT(*) AS rating_count
		FROM reviews
		GROUP BY book_id
	) s ON s.book_id = b.id
`

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, author, category_id, cover, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.CategoryID,
		book.Cover,
		book.Description,
		book.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create book",
			zap.Error(err),
			zap.String("title", book.Title),
		)
		return fmt.Errorf("create book %q: %w", book.Title, err)
	}

	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	query := bookSelect + ` WHERE b.id = $1`

	book, err := scanBook(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by ID",
			zap.Error(err),
			zap.String("book_id", id.String()),
		)
		return nil, fmt.Errorf("find book by id %s: %w", id.String(), err)
	}

	return book, nil
}

func (r *bookRepository) FindAll(ctx context.Context, filter BookFilter, limit, offset int) ([]*entity.Book, error) {
	where := filter.where()

	var queryBuilder strings.Builder
	queryBuilder.WriteString(bookSelect)
	queryBuilder.WriteString(where.String())
	queryBuilder.WriteString(" ORDER BY b.title, b.id")
	queryBuilder.WriteString(" LIMIT " + where.placeholder(limit))
	queryBuilder.WriteString(" OFFSET " + where.placeholder(offset))

	rows, err := r.db.Query(ctx, queryBuilder.String(), where.Args()...)
	if err != nil {
		r.log.Error("Failed to find books",
			zap.Error(err),
			zap.String("q", filter.Query),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer rows.Close()

	var books []*entity.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	r.log.Debug("Books found",
		zap.Int("count", len(books)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return books, nil
}

func (r *bookRepository) Count(ctx context.Context, filter BookFilter) (int64, error) {
	where := filter.where()
	query := `SELECT COUNT(*) FROM books b` + where.String()

	var total int64
	if err := r.db.QueryRow(ctx, query, where.Args()...).Scan(&total); err != nil {
		r.log.Error("Failed to count books",
			zap.Error(err),
			zap.String("q", filter.Query),
		)
		return 0, fmt.Errorf("count books: %w", err)
	}

	return total, nil
}

func scanBook(row pgx.Row) (*entity.Book, error) {
	var (
		book         entity.Book
		categoryName *string
	)

	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.CategoryID,
		&categoryName,
		&book.Cover,
		&book.Description,
		&book.CreatedAt,
		&book.Ratings.Sum,
		&book.Ratings.Count,
	)
	if err != nil {
		return nil, err
	}

	if book.CategoryID != nil && categoryName != nil {
		book.Category = &entity.Category{
			BaseSimple: entity.BaseSimple{ID: *book.CategoryID},
			Name:       *categoryName,
		}
	}

	return &book, nil
}
