package response

import (
	"time"

	"library-catalog/internal/data/entity"
)

type BookResponse struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	Category      *CategoryRef `json:"category"`
	Cover         *string      `json:"cover"`
	Description   string       `json:"description"`
	AverageRating float64      `json:"average_rating"`
	ReviewsCount  int64        `json:"reviews_count"`
	URL           string       `json:"url"`
	CreatedAt     time.Time    `json:"created_at"`
}

type BookListPage struct {
	Books            []BookResponse     `json:"books"`
	Categories       []CategoryResponse `json:"categories"`
	Query            string             `json:"q"`
	SelectedCategory string             `json:"selected_category"`
	Pagination       PaginationMeta     `json:"pagination"`
}

type BookDetailPage struct {
	Book    BookResponse     `json:"book"`
	Reviews []ReviewResponse `json:"reviews"`
	Form    ReviewForm       `json:"form"`
}

// BookForm echoes the add-book form; the uploaded file is never echoed
type BookForm struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type AddBookPage struct {
	Form       BookForm           `json:"form"`
	Categories []CategoryResponse `json:"categories"`
}

func BookToResponse(book *entity.Book) BookResponse {
	resp := BookResponse{
		ID:            book.ID.String(),
		Title:         book.Title,
		Author:        book.Author,
		Cover:         book.Cover,
		Description:   book.Description,
		AverageRating: book.AverageRating(),
		ReviewsCount:  book.ReviewsCount(),
		URL:           book.URL(),
		CreatedAt:     book.CreatedAt,
	}

	if book.Category != nil {
		resp.Category = &CategoryRef{
			ID:   book.Category.ID.String(),
			Name: book.Category.Name,
		}
	}

	return resp
}

func BooksToResponse(books []*entity.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, book := range books {
		out[i] = BookToResponse(book)
	}
	return out
}
