package middleware

import (
	"context"
	"net/http"

	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a session token into the caller behind it
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (utils.Caller, error)
}

// Session attaches the caller to every request. Requests without a valid
// session continue as anonymous; this middleware never rejects.
func Session(auth Authenticator, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := utils.SessionToken(r, cookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to resolve session",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				caller = utils.Caller{}
			}

			ctx := utils.SetCallerContext(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCaller guards a route with a caller predicate. Anonymous callers are
// sent to the login page, signed-in callers failing the predicate get 403.
func RequireCaller(allowed func(utils.Caller) bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := utils.GetCallerFromContext(r.Context())

			if !caller.IsAuthenticated() {
				utils.Redirect(w, r, utils.LoginURL(r.URL.RequestURI()))
				return
			}

			if !allowed(caller) {
				logger.Warn("Access denied",
					zap.String("user_id", caller.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to access this page.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
