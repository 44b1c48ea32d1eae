package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

const sessionCookieName = "session_id"

const (
	contextKeySession = "session"
	contextKeyUser    = "user"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/login"

// MsgLoginRequired is flashed when a protected page is requested without a session user.
const MsgLoginRequired = "Please log in to continue."

// UserLoader reloads the account a session refers to.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (dom.User, error)
}

// ErrorHandler renders a failure that is not the client's fault.
type ErrorHandler func(c *gin.Context, err error)

// Handle is the session attached to the current request.
type Handle struct {
	store Store
	id    string
	sess  dom.Session
}

// UserID returns the bound account id, or "" for an anonymous session.
func (h *Handle) UserID() string { return h.sess.UserID }

// AddFlash queues a one-shot message for the next rendered page.
func (h *Handle) AddFlash(ctx context.Context, msg string) error {
	h.sess.Flashes = append(h.sess.Flashes, msg)
	return h.store.Save(ctx, h.id, h.sess)
}

// PopFlashes returns the queued messages and clears the queue.
func (h *Handle) PopFlashes(ctx context.Context) ([]string, error) {
	if len(h.sess.Flashes) == 0 {
		return nil, nil
	}
	out := h.sess.Flashes
	h.sess.Flashes = nil
	if err := h.store.Save(ctx, h.id, h.sess); err != nil {
		h.sess.Flashes = out
		return nil, err
	}
	return out, nil
}

// SessionFromContext returns the session set by Manager.Middleware.
func SessionFromContext(c *gin.Context) (*Handle, bool) {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return nil, false
	}
	h, ok := v.(*Handle)
	return h, ok
}

// UserFromContext returns the account set by RequireUser.
func UserFromContext(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// Manager issues session cookies and gates protected routes.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	log    *zap.Logger
}

func NewManager(store Store, ttl time.Duration, secure bool, log *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Manager{store: store, ttl: ttl, secure: secure, log: log}
}

// Middleware attaches a session to every request. Clients without a valid
// cookie get a fresh anonymous session; that is not an error.
func (m *Manager) Middleware(onErr ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id, err := c.Cookie(sessionCookieName); err == nil && id != "" {
			sess, err := m.store.Get(ctx, id)
			switch {
			case err == nil:
				c.Set(contextKeySession, &Handle{store: m.store, id: id, sess: sess})
				c.Next()
				return
			case !errors.Is(err, dom.ErrNotFound):
				m.log.Error("session lookup failed", zap.Error(err))
				onErr(c, err)
				c.Abort()
				return
			}
		}
		if _, err := m.start(c, dom.Session{}); err != nil {
			m.log.Error("session create failed", zap.Error(err))
			onErr(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUser lets the request through only when the session is bound to an
// account that still exists. Everyone else is redirected to the login page.
func (m *Manager) RequireUser(users UserLoader, onErr ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		h, ok := SessionFromContext(c)
		if !ok {
			onErr(c, errors.New("session middleware not installed"))
			c.Abort()
			return
		}
		ctx := c.Request.Context()
		if !h.sess.Authenticated() {
			m.redirectToLogin(c, h)
			return
		}
		u, err := users.GetByID(ctx, h.UserID())
		if errors.Is(err, dom.ErrNotFound) {
			h.sess.UserID = ""
			if err := m.store.Save(ctx, h.id, h.sess); err != nil {
				m.log.Warn("session unbind failed", zap.Error(err))
			}
			m.redirectToLogin(c, h)
			return
		}
		if err != nil {
			m.log.Error("session user lookup failed", zap.Error(err))
			onErr(c, err)
			c.Abort()
			return
		}
		c.Set(contextKeyUser, u)
		c.Next()
	}
}

// Login binds the user to a new session token. The previous token is
// destroyed; queued flashes carry over, except the login prompt itself.
func (m *Manager) Login(c *gin.Context, user dom.User) error {
	ctx := c.Request.Context()
	var flashes []string
	if h, ok := SessionFromContext(c); ok {
		for _, f := range h.sess.Flashes {
			if f != MsgLoginRequired {
				flashes = append(flashes, f)
			}
		}
		if err := m.store.Delete(ctx, h.id); err != nil {
			return err
		}
	}
	_, err := m.start(c, dom.Session{UserID: user.ID, Flashes: flashes})
	return err
}

// Logout destroys the session server-side and starts a new anonymous one, so
// the old cookie value no longer resolves to anything.
func (m *Manager) Logout(c *gin.Context) error {
	if h, ok := SessionFromContext(c); ok {
		if err := m.store.Delete(c.Request.Context(), h.id); err != nil {
			return err
		}
	}
	_, err := m.start(c, dom.Session{})
	return err
}

func (m *Manager) start(c *gin.Context, sess dom.Session) (*Handle, error) {
	id, err := m.store.Create(c.Request.Context(), sess)
	if err != nil {
		return nil, err
	}
	h := &Handle{store: m.store, id: id, sess: sess}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, id, int(m.ttl/time.Second), "/", "", m.secure, true)
	c.Set(contextKeySession, h)
	return h, nil
}

func (m *Manager) redirectToLogin(c *gin.Context, h *Handle) {
	if err := h.AddFlash(c.Request.Context(), MsgLoginRequired); err != nil {
		m.log.Warn("flash failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
