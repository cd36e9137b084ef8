package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"library-catalog/internal/data/entity"
	"library-catalog/internal/data/repository"

	"github.com/google/uuid"
)

// store is an in-memory stand-in for the database shared by the fake repositories
type store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*entity.User
	sessions   map[uuid.UUID]*entity.Session
	categories map[uuid.UUID]*entity.Category
	books      map[uuid.UUID]*entity.Book
	reviews    []*entity.Review

	// injected failures
	bookCreateErr    error
	sessionCreateErr error
}

func newStore() *store {
	return &store{
		users:      make(map[uuid.UUID]*entity.User),
		sessions:   make(map[uuid.UUID]*entity.Session),
		categories: make(map[uuid.UUID]*entity.Category),
		books:      make(map[uuid.UUID]*entity.Book),
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{s},
		Session:  &fakeSessionRepo{s},
		Category: &fakeCategoryRepo{s},
		Book:     &fakeBookRepo{s},
		Review:   &fakeReviewRepo{s},
	}
}

func (s *store) addCategory(name string) *entity.Category {
	c := &entity.Category{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()}, Name: name}
	s.categories[c.ID] = c
	return c
}

func (s *store) addBook(title, author string, category *entity.Category) *entity.Book {
	b := &entity.Book{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Title:      title,
		Author:     author,
	}
	if category != nil {
		b.CategoryID = &category.ID
	}
	s.books[b.ID] = b
	return b
}

func (s *store) addUser(username string, active, staff bool) *entity.User {
	u := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:     username,
		IsActive:     active,
		IsStaff:      staff,
	}
	s.users[u.ID] = u
	return u
}

func (s *store) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// ==================== USERS ====================

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return fmt.Errorf("user %q: %w", user.Username, repository.ErrDuplicate)
		}
	}
	copied := *user
	r.s.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetStaff(ctx context.Context, id uuid.UUID, isStaff bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.IsStaff = isStaff
	return nil
}

// ==================== SESSIONS ====================

type fakeSessionRepo struct{ s *store }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.sessionCreateErr != nil {
		return r.s.sessionCreateErr
	}
	copied := *session
	r.s.sessions[session.Token] = &copied
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil || !time.Now().Before(session.ExpiresAt) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session, ok := r.s.sessions[token]; ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

// ==================== CATEGORIES ====================

type fakeCategoryRepo struct{ s *store }

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return fmt.Errorf("category %q: %w", category.Name, repository.ErrDuplicate)
		}
	}
	copied := *category
	r.s.categories[category.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		copied := *c
		for _, b := range r.s.books {
			if b.CategoryID != nil && *b.CategoryID == c.ID {
				copied.BookCount++
			}
		}
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ==================== BOOKS ====================

type fakeBookRepo struct{ s *store }

func (r *fakeBookRepo) Create(ctx context.Context, book *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.bookCreateErr != nil {
		return r.s.bookCreateErr
	}
	copied := *book
	r.s.books[book.ID] = &copied
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(b), nil
}

func (r *fakeBookRepo) FindAll(ctx context.Context, filter repository.BookFilter, limit, offset int) ([]*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := r.match(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeBookRepo) Count(ctx context.Context, filter repository.BookFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.match(filter))), nil
}

func (r *fakeBookRepo) match(filter repository.BookFilter) []*entity.Book {
	q := strings.ToLower(filter.Query)
	var out []*entity.Book
	for _, b := range r.s.books {
		if q != "" && !strings.Contains(strings.ToLower(b.Title), q) && !strings.Contains(strings.ToLower(b.Author), q) {
			continue
		}
		if filter.CategoryID != nil && (b.CategoryID == nil || *b.CategoryID != *filter.CategoryID) {
			continue
		}
		out = append(out, r.hydrate(b))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// hydrate mirrors the joins of the real query
func (r *fakeBookRepo) hydrate(b *entity.Book) *entity.Book {
	copied := *b
	if b.CategoryID != nil {
		if c, ok := r.s.categories[*b.CategoryID]; ok {
			copied.Category = &entity.Category{BaseSimple: c.BaseSimple, Name: c.Name}
		}
	}
	copied.Ratings = entity.RatingSummary{}
	for _, review := range r.s.reviews {
		if review.BookID == b.ID {
			copied.Ratings.Sum += int64(review.Rating)
			copied.Ratings.Count++
		}
	}
	return &copied
}

// ==================== REVIEWS ====================

type fakeReviewRepo struct{ s *store }

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.BookID == review.BookID && existing.UserID == review.UserID {
			return fmt.Errorf("review: %w", repository.ErrDuplicate)
		}
	}
	copied := *review
	r.s.reviews = append(r.s.reviews, &copied)
	return nil
}

func (r *fakeReviewRepo) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.s.reviews {
		if review.BookID == bookID {
			copied := *review
			if u, ok := r.s.users[review.UserID]; ok {
				copied.Username = u.Username
			}
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ==================== COVER STORAGE ====================

type savedCover struct {
	objectPath  string
	contentType string
	size        int
}

type fakeCoverStorage struct {
	mu      sync.Mutex
	saved   []savedCover
	deleted []string
}

func (f *fakeCoverStorage) Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, savedCover{objectPath: objectPath, contentType: contentType, size: len(data)})
	return "/media/" + objectPath, nil
}

func (f *fakeCoverStorage) Delete(ctx context.Context, objectPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectPath)
	return nil
}

func (f *fakeCoverStorage) Close() error { return nil }
