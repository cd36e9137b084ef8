package request

import (
	"net/url"
	"strings"

	"library-catalog/pkg/utils"

	"github.com/google/uuid"
)

// BookListRequest carries the raw listing query; nothing here is rejected
type BookListRequest struct {
	Query    string
	Category string
	Page     string
}

func NewBookListRequest(query url.Values) BookListRequest {
	return BookListRequest{
		Query:    strings.TrimSpace(query.Get("q")),
		Category: strings.TrimSpace(query.Get("category")),
		Page:     strings.TrimSpace(query.Get("page")),
	}
}

// CategoryID returns the parsed category filter. ok is false when a category
// was given but cannot name any category.
func (r BookListRequest) CategoryID() (id *uuid.UUID, ok bool) {
	if r.Category == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(r.Category)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

type CreateBookRequest struct {
	Title       string     `form:"title" validate:"required,max=255"`
	Author      string     `form:"author" validate:"required,max=255"`
	Category    string     `form:"category" validate:"omitempty,uuid"`
	Description string     `form:"description" validate:"-"`
	Cover       *CoverFile `form:"cover" validate:"-"`
}

// CoverFile is an uploaded cover read fully into memory
type CoverFile struct {
	Filename string
	Data     []byte
}

func NewCreateBookRequest(form url.Values, cover *CoverFile) CreateBookRequest {
	return CreateBookRequest{
		Title:       strings.TrimSpace(form.Get("title")),
		Author:      strings.TrimSpace(form.Get("author")),
		Category:    strings.TrimSpace(form.Get("category")),
		Description: strings.TrimSpace(form.Get("description")),
		Cover:       cover,
	}
}

func (r CreateBookRequest) Validate() map[string]string {
	return utils.ValidateStruct(r)
}

func (r CreateBookRequest) CategoryID() *uuid.UUID {
	if r.Category == "" {
		return nil
	}
	id, err := uuid.Parse(r.Category)
	if err != nil {
		return nil
	}
	return &id
}
