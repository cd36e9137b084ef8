// internal/wire/wire.go
package wire

import (
	"net/http"
	"strings"

	"library-catalog/internal/adaptor"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/middleware"
	"library-catalog/pkg/storage"
	"library-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP application
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, covers storage.CoverStorage, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, covers, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, service, covers, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	covers storage.CoverStorage,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(service.Auth, config.Session.CookieName, logger))

	wireBook(r, handler.Book, logger)
	wireCategory(r, handler.Category)
	wireAuth(r, handler.Auth)
	wireMedia(r, covers)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Page not found")
	})

	return r
}

// wireMedia serves covers straight from disk when they are stored locally
func wireMedia(r chi.Router, covers storage.CoverStorage) {
	local, ok := covers.(*storage.LocalStorage)
	if !ok {
		return
	}

	prefix := local.BaseURL()
	if !strings.HasPrefix(prefix, "/") {
		return
	}

	files := http.StripPrefix(prefix, http.FileServer(http.Dir(local.Root())))
	r.Handle(prefix+"*", files)
}
