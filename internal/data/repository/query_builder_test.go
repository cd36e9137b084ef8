package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookFilterWhere(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name      string
		filter    BookFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    BookFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "query only",
			filter:    BookFilter{Query: "dune"},
			wantWhere: " WHERE (b.title ILIKE $1 OR b.author ILIKE $2)",
			wantArgs:  []any{"%dune%", "%dune%"},
		},
		{
			name:      "category only",
			filter:    BookFilter{CategoryID: &categoryID},
			wantWhere: " WHERE b.category_id = $1",
			wantArgs:  []any{categoryID},
		},
		{
			name:      "query and category",
			filter:    BookFilter{Query: "herbert", CategoryID: &categoryID},
			wantWhere: " WHERE (b.title ILIKE $1 OR b.author ILIKE $2) AND b.category_id = $3",
			wantArgs:  []any{"%herbert%", "%herbert%", categoryID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := tt.filter.where()
			assert.Equal(t, tt.wantWhere, where.String())
			assert.Equal(t, tt.wantArgs, where.Args())
		})
	}
}

func TestWhereBuilderPlaceholderContinuesNumbering(t *testing.T) {
	where := BookFilter{Query: "x"}.where()

	assert.Equal(t, "$3", where.placeholder(6))
	assert.Equal(t, "$4", where.placeholder(12))
	assert.Equal(t, []any{"%x%", "%x%", 6, 12}, where.Args())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
