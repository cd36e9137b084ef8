package adaptor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-catalog/internal/adaptor"
	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/policy"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/middleware"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBooks struct {
	lastList    request.BookListRequest
	detail      *response.BookDetailPage
	createReq   *request.CreateBookRequest
	createErr   error
	createCalls int
}

func (f *fakeBooks) ListBooks(ctx context.Context, req request.BookListRequest) (*response.BookListPage, error) {
	f.lastList = req
	return &response.BookListPage{
		Books:            []response.BookResponse{},
		Query:            req.Query,
		SelectedCategory: req.Category,
		Pagination:       response.NewPaginationMeta(1, usecase.BooksPerPage, 0),
	}, nil
}

func (f *fakeBooks) GetBookDetail(ctx context.Context, bookID string) (*response.BookDetailPage, error) {
	if f.detail == nil || f.detail.Book.ID != bookID {
		return nil, usecase.ErrBookNotFound
	}
	page := *f.detail
	return &page, nil
}

func (f *fakeBooks) GetAddBookPage(ctx context.Context) (*response.AddBookPage, error) {
	return &response.AddBookPage{Categories: []response.CategoryResponse{}}, nil
}

func (f *fakeBooks) CreateBook(ctx context.Context, caller utils.Caller, req request.CreateBookRequest) (*response.BookResponse, error) {
	f.createCalls++
	f.createReq = &req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &response.BookResponse{ID: "new-book", Title: req.Title, URL: "/book/new-book/"}, nil
}

type fakeReviews struct {
	err    error
	calls  int
	caller utils.Caller
}

func (f *fakeReviews) SubmitReview(ctx context.Context, caller utils.Caller, bookID string, req request.ReviewRequest) (*response.ReviewResponse, error) {
	f.calls++
	f.caller = caller
	if f.err != nil {
		return nil, f.err
	}
	return &response.ReviewResponse{BookID: bookID, BookURL: "/book/" + bookID + "/", Rating: 5}, nil
}

type fakeAuth struct {
	registerErr error
	loginErr    error
	loggedOut   []string
}

func (f *fakeAuth) Register(ctx context.Context, req request.RegisterRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &response.AuthResponse{Username: req.Username, Token: "token-123"}, nil
}

func (f *fakeAuth) Login(ctx context.Context, req request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &response.AuthResponse{Username: req.Username, Token: "token-456"}, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (utils.Caller, error) {
	return utils.Caller{}, nil
}

type fixture struct {
	books   *fakeBooks
	reviews *fakeReviews
	auth    *fakeAuth
	router  chi.Router
}

var testSession = utils.SessionConfig{CookieName: "sessionid", TTLHours: 1}

// newFixture mounts the handlers the way the application router does, with
// the given caller already resolved
func newFixture(caller utils.Caller) *fixture {
	f := &fixture{
		books:   &fakeBooks{},
		reviews: &fakeReviews{},
		auth:    &fakeAuth{},
	}

	log := zap.NewNop()
	bookHandler := adaptor.NewBookHandler(f.books, f.reviews, 1<<20, log)
	authHandler := adaptor.NewAuthHandler(f.auth, testSession, log)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.SetCallerContext(r.Context(), caller)))
		})
	})

	r.Get("/", bookHandler.List)
	r.Get("/book/{id}/", bookHandler.Detail)
	r.Post("/book/{id}/", bookHandler.PostReview)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(policy.IsActiveStaff, log))
		r.Get("/add-book/", bookHandler.AddBookForm)
		r.Post("/add-book/", bookHandler.AddBook)
	})
	r.Get("/register/", authHandler.RegisterForm)
	r.Post("/register/", authHandler.Register)
	r.Get("/login/", authHandler.LoginForm)
	r.Post("/login/", authHandler.Login)
	r.Post("/logout/", authHandler.Logout)

	f.router = r
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status   bool                 `json:"status"`
	Message  string               `json:"message"`
	Data     json.RawMessage      `json:"data"`
	Errors   map[string]string    `json:"errors"`
	Messages []utils.FlashMessage `json:"messages"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// flashFrom replays the flash cookie set by a redirect into a follow-up request
func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) []utils.FlashMessage {
	t.Helper()
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return utils.PopFlash(httptest.NewRecorder(), next)
}
