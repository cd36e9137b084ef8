package response

import "library-catalog/internal/data/entity"

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BookCount int64  `json:"book_count"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryListPage struct {
	Categories []CategoryResponse `json:"categories"`
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		BookCount: category.BookCount,
	}
}

func CategoriesToResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryToResponse(c)
	}
	return out
}
