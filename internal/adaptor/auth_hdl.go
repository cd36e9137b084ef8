package adaptor

import (
	"errors"
	"net/http"

	"library-catalog/internal/dto/request"
	"library-catalog/internal/dto/response"
	"library-catalog/internal/usecase"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	session utils.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, session utils.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		session: session,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// RegisterForm handles GET /register/
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	utils.ResponsePage(w, r, http.StatusOK, "success", response.RegisterForm{}, nil)
}

// Register handles POST /register/
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return
	}
	req := request.NewRegisterRequest(r.PostForm)

	auth, err := h.service.Register(r.Context(), req, clientInfo(r))
	if err != nil {
		if fields, ok := validationFields(err); ok {
			form := response.RegisterForm{Username: req.Username, Email: req.Email}
			utils.ResponsePage(w, r, http.StatusBadRequest, msgFixErrors, form, fields)
			return
		}
		h.handleServiceError(w, err, "register")
		return
	}

	utils.SetSessionCookie(w, h.session, auth.Token, auth.ExpiresAt)
	utils.AddFlash(w, r, utils.FlashSuccess, msgRegistered)
	utils.Redirect(w, r, "/")
}

// LoginForm handles GET /login/
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if utils.GetCallerFromContext(r.Context()).IsAuthenticated() {
		utils.Redirect(w, r, "/")
		return
	}

	form := response.LoginForm{Next: utils.SafeRedirectPath(r.URL.Query().Get("next"), "")}
	utils.ResponsePage(w, r, http.StatusOK, "success", form, nil)
}

// Login handles POST /login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseBadRequest(w, "Invalid form data", nil)
		return
	}
	// r.Form also carries ?next= from the query string
	req := request.NewLoginRequest(r.Form)
	form := response.LoginForm{Username: req.Username, Next: utils.SafeRedirectPath(req.Next, "")}

	auth, err := h.service.Login(r.Context(), req, clientInfo(r))
	if err != nil {
		if fields, ok := validationFields(err); ok {
			utils.ResponsePage(w, r, http.StatusBadRequest, msgFixErrors, form, fields)
			return
		}

		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.ResponsePage(w, r, http.StatusBadRequest, msgInvalidCredentials, form,
				map[string]string{"__all__": msgInvalidCredentials})
		case errors.Is(err, usecase.ErrInactiveAccount):
			utils.ResponsePage(w, r, http.StatusBadRequest, msgInactiveAccount, form,
				map[string]string{"__all__": msgInactiveAccount})
		default:
			h.handleServiceError(w, err, "login")
		}
		return
	}

	utils.SetSessionCookie(w, h.session, auth.Token, auth.ExpiresAt)
	utils.Redirect(w, r, utils.SafeRedirectPath(req.Next, "/"))
}

// Logout handles POST /logout/
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := utils.SessionToken(r, h.session.CookieName); token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			h.handleServiceError(w, err, "logout")
			return
		}
	}

	utils.ClearSessionCookie(w, h.session)
	utils.Redirect(w, r, "/")
}

// handleServiceError handles unexpected errors for auth operations
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
