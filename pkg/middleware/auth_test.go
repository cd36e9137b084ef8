package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthenticator struct {
	callers map[string]utils.Caller
	err     error
}

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (utils.Caller, error) {
	if s.err != nil {
		return utils.Caller{}, s.err
	}
	return s.callers[token], nil
}

func captureCaller(got *utils.Caller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = utils.GetCallerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestSessionAttachesCaller(t *testing.T) {
	alice := utils.Caller{UserID: uuid.New(), Username: "alice", IsActive: true}
	auth := stubAuthenticator{callers: map[string]utils.Caller{"tok": alice}}

	var got utils.Caller
	handler := Session(auth, "sessionid", zap.NewNop())(captureCaller(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "tok"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, alice, got)
}

func TestSessionNeverRejects(t *testing.T) {
	tests := []struct {
		name  string
		auth  stubAuthenticator
		token string
	}{
		{"no cookie", stubAuthenticator{}, ""},
		{"unknown token", stubAuthenticator{callers: map[string]utils.Caller{}}, "stale"},
		{"lookup failure", stubAuthenticator{err: errors.New("db down")}, "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.Caller{Username: "sentinel"}
			handler := Session(tt.auth, "sessionid", zap.NewNop())(captureCaller(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: "sessionid", Value: tt.token})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.False(t, got.IsAuthenticated())
		})
	}
}

func TestRequireCaller(t *testing.T) {
	isStaff := func(c utils.Caller) bool { return c.IsStaff }

	tests := []struct {
		name     string
		caller   utils.Caller
		code     int
		location string
		called   bool
	}{
		{"anonymous", utils.Caller{}, http.StatusSeeOther, "/login/?next=%2Fadd-book%2F%3Fdraft%3D1", false},
		{"signed in", utils.Caller{UserID: uuid.New()}, http.StatusForbidden, "", false},
		{"staff", utils.Caller{UserID: uuid.New(), IsStaff: true}, http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})
			handler := RequireCaller(isStaff, zap.NewNop())(next)

			req := httptest.NewRequest(http.MethodGet, "/add-book/?draft=1", nil)
			req = req.WithContext(utils.SetCallerContext(req.Context(), tt.caller))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Equal(t, tt.called, called)
		})
	}
}
