package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leodalati/Employee-Record-Management-System/internal/auth"
	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/dto"
	"github.com/leodalati/Employee-Record-Management-System/internal/service"
	"github.com/leodalati/Employee-Record-Management-System/internal/views"
)

// Flash messages shown around login and logout.
const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgLoggedOut          = "You have been logged out."
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	sessions *auth.Manager
	users    *service.UserService
	web      *Web
	log      *zap.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Manager, users *service.UserService, web *Web, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, web: web, log: log}
}

// LoginForm renders the sign-in page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if s, ok := auth.SessionFromContext(c); ok && s.UserID() != "" {
		c.Redirect(http.StatusFound, ListPath)
		return
	}
	h.web.Render(c, http.StatusOK, views.PageLogin, "Sign in", nil)
}

// Login checks the posted credentials. Unknown usernames and wrong passwords
// get the same flash.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginRequest
	if err := c.ShouldBind(&form); err != nil {
		h.web.RedirectWithFlash(c, auth.LoginPath, MsgInvalidCredentials)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, dom.ErrInvalidCredentials) {
			h.log.Info("login rejected", zap.String("client_ip", c.ClientIP()))
			h.web.RedirectWithFlash(c, auth.LoginPath, MsgInvalidCredentials)
			return
		}
		h.web.Fail(c, err)
		return
	}
	if err := h.sessions.Login(c, user); err != nil {
		h.web.Fail(c, err)
		return
	}
	h.log.Info("login", zap.String("user_id", user.ID))
	h.web.RedirectWithFlash(c, ListPath, "Welcome, "+user.Username+".")
}

// Logout destroys the session and returns to the sign-in page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.web.Fail(c, err)
		return
	}
	h.web.RedirectWithFlash(c, auth.LoginPath, MsgLoggedOut)
}
