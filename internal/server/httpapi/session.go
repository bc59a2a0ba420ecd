package httpapi

import (
	"context"

	"photoshare/internal/model"
)

// sessionCookie is the cookie carrying the opaque session token.
const sessionCookie = "session_id"

type ctxKey string

const sessionKey ctxKey = "photoshare.session"

// WithSession stores the resolved session in the request context.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromCtx fetches the resolved session from the request context.
func SessionFromCtx(ctx context.Context) (*model.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*model.Session)
	return s, ok && s != nil
}
