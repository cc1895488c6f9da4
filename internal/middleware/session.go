package middleware

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/api/transport"
	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/pkg/httpcontext"
)

// SessionSource yields the active session.
type SessionSource interface {
	Require() (domain.Session, error)
}

// Middleware wraps a handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// RequireSession rejects requests with 401 when nobody is logged in and
// otherwise attaches the session as a user value.
func RequireSession(sessions SessionSource, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			session, err := sessions.Require()
			if err != nil {
				logger.Debug("request without session", zap.String("path", string(ctx.Path())))
				reject(ctx, fasthttp.StatusUnauthorized, domain.ErrCodeUnauthorized, err)
				return
			}
			ctx.SetUserValue(httpcontext.UserValueSession, session)
			ctx.SetUserValue(httpcontext.UserValueUsername, session.Username)
			next(ctx)
		}
	}
}

// RequireView rejects with 403 when the session's role may not open view.
// It must run inside RequireSession.
func RequireView(view domain.View, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			session, _ := ctx.UserValue(httpcontext.UserValueSession).(domain.Session)
			if !domain.CanView(session.Role, view) {
				logger.Warn("view denied",
					zap.String("username", session.Username),
					zap.String("role", string(session.Role)),
					zap.String("view", string(view)),
				)
				reject(ctx, fasthttp.StatusForbidden, domain.ErrCodeForbidden, domain.ErrForbidden)
				return
			}
			next(ctx)
		}
	}
}

// Chain applies mws so the first one runs outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func reject(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, err error) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(transport.NewError(string(code), err.Error(), nil).Encode())
}
