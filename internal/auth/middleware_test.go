package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
)

type fixture struct {
	engine *gin.Engine
	store  *MemStore
	users  *repo.MemUserRepo
	user   dom.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{store: NewMemStore(time.Hour), users: repo.NewMemUserRepo()}
	u, err := f.users.Create(context.Background(), "admin", "hash")
	require.NoError(t, err)
	f.user = u

	m := NewManager(f.store, time.Hour, false, zap.NewNop())
	onErr := func(c *gin.Context, err error) { c.String(http.StatusInternalServerError, err.Error()) }

	r := gin.New()
	r.Use(m.Middleware(onErr))
	r.GET("/login", func(c *gin.Context) {
		h, _ := SessionFromContext(c)
		flashes, err := h.PopFlashes(c.Request.Context())
		require.NoError(t, err)
		c.String(http.StatusOK, "login:"+strings.Join(flashes, "|"))
	})
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, m.Login(c, f.user))
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, m.Logout(c))
		c.Status(http.StatusNoContent)
	})
	r.POST("/flash", func(c *gin.Context) {
		h, _ := SessionFromContext(c)
		require.NoError(t, h.AddFlash(c.Request.Context(), c.Query("m")))
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", m.RequireUser(f.users, onErr), func(c *gin.Context) {
		u, ok := UserFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, "hello "+u.Username)
	})
	f.engine = r
	return f
}

// do sends the request with cookie (if any) and returns the recorder and the
// session cookie the response left the client with.
func (f *fixture) do(method, path, cookie string) (*httptest.ResponseRecorder, string) {
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			cookie = c.Value
		}
	}
	return rec, cookie
}

func TestMiddleware_IssuesAnonymousSession(t *testing.T) {
	f := newFixture(t)

	rec, cookie := f.do(http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, cookie)

	sess, err := f.store.Get(context.Background(), cookie)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	setCookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "SameSite=Lax")

	// A known cookie is reused, an unknown one is replaced.
	_, same := f.do(http.MethodGet, "/login", cookie)
	assert.Equal(t, cookie, same)
	_, replaced := f.do(http.MethodGet, "/login", "forged")
	assert.NotEqual(t, "forged", replaced)
}

func TestRequireUser_RedirectsAnonymous(t *testing.T) {
	f := newFixture(t)

	rec, cookie := f.do(http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))

	rec, _ = f.do(http.MethodGet, "/login", cookie)
	assert.Equal(t, "login:"+MsgLoginRequired, rec.Body.String())
}

func TestLogin_RotatesTokenAndKeepsFlashes(t *testing.T) {
	f := newFixture(t)

	_, anon := f.do(http.MethodGet, "/login", "")
	_, anon = f.do(http.MethodPost, "/flash?m=carried", anon)

	_, authed := f.do(http.MethodPost, "/login", anon)
	require.NotEqual(t, anon, authed)

	_, err := f.store.Get(context.Background(), anon)
	assert.ErrorIs(t, err, dom.ErrNotFound)

	rec, _ := f.do(http.MethodGet, "/private", authed)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello admin", rec.Body.String())

	rec, _ = f.do(http.MethodGet, "/login", authed)
	assert.Equal(t, "login:carried", rec.Body.String())
}

func TestLogin_DropsLoginPrompt(t *testing.T) {
	f := newFixture(t)

	_, anon := f.do(http.MethodGet, "/private", "")
	_, anon = f.do(http.MethodPost, "/flash?m=carried", anon)
	_, authed := f.do(http.MethodPost, "/login", anon)

	rec, _ := f.do(http.MethodGet, "/login", authed)
	assert.Equal(t, "login:carried", rec.Body.String())
}

func TestLogout_InvalidatesToken(t *testing.T) {
	f := newFixture(t)

	_, authed := f.do(http.MethodPost, "/login", "")
	_, fresh := f.do(http.MethodPost, "/logout", authed)
	require.NotEqual(t, authed, fresh)

	rec, _ := f.do(http.MethodGet, "/private", fresh)
	assert.Equal(t, http.StatusFound, rec.Code)

	// Replaying the old token gets a brand new anonymous session.
	rec, replay := f.do(http.MethodGet, "/private", authed)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.NotEqual(t, authed, replay)
}

func TestRequireUser_DeletedAccount(t *testing.T) {
	f := newFixture(t)

	_, authed := f.do(http.MethodPost, "/login", "")
	f.users.Remove(f.user.ID)

	rec, cookie := f.do(http.MethodGet, "/private", authed)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, authed, cookie)

	sess, err := f.store.Get(context.Background(), authed)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestPopFlashes_OneShot(t *testing.T) {
	f := newFixture(t)

	_, cookie := f.do(http.MethodPost, "/flash?m=one", "")
	_, cookie = f.do(http.MethodPost, "/flash?m=two", cookie)

	rec, _ := f.do(http.MethodGet, "/login", cookie)
	assert.Equal(t, "login:one|two", rec.Body.String())
	rec, _ = f.do(http.MethodGet, "/login", cookie)
	assert.Equal(t, "login:", rec.Body.String())
}
