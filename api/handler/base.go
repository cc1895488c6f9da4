package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/api/transport"
	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/pkg/httpcontext"
	appLogger "github.com/fastygo/taskspace/pkg/logger"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		body = []byte(`{"status":"error","code":"INTERNAL"}`)
	}
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.String("path", string(ctx.Path())),
			zap.Error(err),
		)
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), errorMeta(err)))
}

func errorMeta(err error) interface{} {
	if upstream := domain.UpstreamStatus(err); upstream != 0 {
		return map[string]int{"upstream_status": upstream}
	}
	return nil
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), message, nil))
}

// session returns the session the middleware attached, answering 401 when absent.
func (h baseHandler) session(ctx *fasthttp.RequestCtx) (domain.Session, bool) {
	sess, ok := ctx.UserValue(httpcontext.UserValueSession).(domain.Session)
	if !ok || sess.Username == "" {
		h.respondError(ctx, domain.ErrNoSession)
		return domain.Session{}, false
	}
	return sess, true
}

func (h baseHandler) log(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, h.logger)
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeNetwork):
		return http.StatusBadGateway, string(domain.ErrCodeNetwork)
	case domain.IsDomainError(err, domain.ErrCodeUpstream):
		return http.StatusBadGateway, string(domain.ErrCodeUpstream)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
