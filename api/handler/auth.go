package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/api/transport"
	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/pkg/httpcontext"
	authUC "github.com/fastygo/taskspace/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Start the session
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.SessionView{
		Session: *session,
		Menu:    domain.VisibleMenu(session.Role),
	})
}

// @Summary End the session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Logout(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Current session
// @Tags auth
// @Router /api/v1/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	session, err := h.uc.Require()
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.SessionView{
		Session: session,
		Menu:    domain.VisibleMenu(session.Role),
	})
}

// @Summary Visible menu
// @Tags auth
// @Router /api/v1/menu [get]
func (h *AuthHandler) Menu(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Menu())
}
