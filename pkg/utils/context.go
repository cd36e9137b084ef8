package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const callerKey contextKey = "caller"

// Caller is the identity attached to a request. The zero value is an anonymous caller.
type Caller struct {
	UserID   uuid.UUID
	Username string
	IsActive bool
	IsStaff  bool
	Token    string
}

func (c Caller) IsAuthenticated() bool {
	return c.UserID != uuid.Nil
}

func SetCallerContext(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetCallerFromContext returns the caller set by the session middleware, anonymous otherwise
func GetCallerFromContext(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerKey).(Caller)
	return caller
}
