package wire

import (
	"library-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Get("/register/", authHandler.RegisterForm)
	r.Post("/register/", authHandler.Register)

	r.Get("/login/", authHandler.LoginForm)
	r.Post("/login/", authHandler.Login)

	r.Post("/logout/", authHandler.Logout)
}
