//go:build integration

package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"
	"library-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRepository(t *testing.T) (*repository.Repository, database.PgxIface) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("library"),
		postgres.WithUsername("library"),
		postgres.WithPassword("library"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := zap.NewNop()
	require.NoError(t, database.Migrate(connStr, 0, log))

	db, err := database.Connect(ctx, connStr, 20)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return repository.NewRepository(db, log), db
}

func seedUser(t *testing.T, repo *repository.Repository, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}

func seedBook(t *testing.T, repo *repository.Repository, title string, categoryID *uuid.UUID) *entity.Book {
	t.Helper()
	book := &entity.Book{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Title:      title,
		Author:     "Author of " + title,
		CategoryID: categoryID,
	}
	require.NoError(t, repo.Book.Create(context.Background(), book))
	return book
}

func newReview(bookID, userID uuid.UUID, rating int) *entity.Review {
	return &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		BookID:     bookID,
		UserID:     userID,
		Comment:    "comment",
		Rating:     rating,
	}
}

func TestRepositoryIntegration(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	t.Run("concurrent duplicate reviews persist once", func(t *testing.T) {
		user := seedUser(t, repo, "racer")
		book := seedBook(t, repo, "Race Conditions", nil)

		const attempts = 10
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Review.Create(ctx, newReview(book.ID, user.ID, 4))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errors.Is(err, repository.ErrDuplicate), "unexpected error: %v", err)
		}
		assert.Equal(t, 1, succeeded)

		reviews, err := repo.Review.FindByBookID(ctx, book.ID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, "racer", reviews[0].Username)
	})

	t.Run("rating aggregate", func(t *testing.T) {
		book := seedBook(t, repo, "Aggregates", nil)
		for i, rating := range []int{5, 4, 4} {
			user := seedUser(t, repo, "rater-"+string(rune('a'+i)))
			require.NoError(t, repo.Review.Create(ctx, newReview(book.ID, user.ID, rating)))
		}

		found, err := repo.Book.FindByID(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(3), found.ReviewsCount())
		assert.Equal(t, 4.33, found.AverageRating())
	})

	t.Run("filtering and ordering", func(t *testing.T) {
		category := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: "Percent 100%"}
		require.NoError(t, repo.Category.Create(ctx, category))
		seedBook(t, repo, "zz Alpha 100%", &category.ID)
		seedBook(t, repo, "zz Beta 1000", &category.ID)

		filter := repository.BookFilter{Query: "100%"}
		books, err := repo.Book.FindAll(ctx, filter, 6, 0)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "zz Alpha 100%", books[0].Title)
		require.NotNil(t, books[0].Category)
		assert.Equal(t, "Percent 100%", books[0].Category.Name)

		count, err := repo.Book.Count(ctx, repository.BookFilter{CategoryID: &category.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		books, err = repo.Book.FindAll(ctx, repository.BookFilter{CategoryID: &category.ID}, 1, 1)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "zz Beta 1000", books[0].Title)
	})

	t.Run("deleting a book removes its reviews", func(t *testing.T) {
		user := seedUser(t, repo, "cascade")
		book := seedBook(t, repo, "Ephemeral", nil)
		require.NoError(t, repo.Review.Create(ctx, newReview(book.ID, user.ID, 3)))

		_, err := db.Exec(ctx, `DELETE FROM books WHERE id = $1`, book.ID)
		require.NoError(t, err)

		reviews, err := repo.Review.FindByBookID(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("deleting a category keeps its books", func(t *testing.T) {
		category := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: "Doomed"}
		require.NoError(t, repo.Category.Create(ctx, category))
		book := seedBook(t, repo, "Survivor", &category.ID)

		_, err := db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, category.ID)
		require.NoError(t, err)

		found, err := repo.Book.FindByID(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.CategoryID)
		assert.Nil(t, found.Category)
	})

	t.Run("duplicate category and username", func(t *testing.T) {
		category := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: "Twice"}
		require.NoError(t, repo.Category.Create(ctx, category))
		category.ID = uuid.New()
		assert.ErrorIs(t, repo.Category.Create(ctx, category), repository.ErrDuplicate)

		seedUser(t, repo, "twin")
		twin := &entity.User{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
			Username:     "twin",
			PasswordHash: "x",
			IsActive:     true,
		}
		assert.ErrorIs(t, repo.User.Create(ctx, twin), repository.ErrDuplicate)
	})

	t.Run("sessions expire and revoke", func(t *testing.T) {
		user := seedUser(t, repo, "sessioned")
		session := &entity.Session{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     user.ID,
			Token:      uuid.New(),
			ExpiresAt:  time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.Session.Create(ctx, session))

		found, err := repo.Session.FindValidSession(ctx, session.Token)
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, repo.Session.Revoke(ctx, session.Token))
		require.NoError(t, repo.Session.Revoke(ctx, session.Token))

		found, err = repo.Session.FindValidSession(ctx, session.Token)
		require.NoError(t, err)
		assert.Nil(t, found)

		removed, err := repo.Session.CleanExpiredSessions(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, removed, int64(1))
	})
}
