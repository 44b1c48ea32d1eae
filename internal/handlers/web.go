package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leodalati/Employee-Record-Management-System/internal/auth"
	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/dto"
	"github.com/leodalati/Employee-Record-Management-System/internal/views"
)

// Web renders pages and failures for every handler.
type Web struct {
	views      *views.Renderer
	log        *zap.Logger
	showDetail bool
}

// NewWeb returns a Web. showDetail puts the underlying error on error pages.
func NewWeb(r *views.Renderer, log *zap.Logger, showDetail bool) *Web {
	return &Web{views: r, log: log, showDetail: showDetail}
}

// Render writes a full page. Queued flashes are consumed here, once per page.
func (w *Web) Render(c *gin.Context, status int, page, title string, data any) {
	p := views.Page{Title: title, Data: data}
	if u, ok := auth.UserFromContext(c); ok {
		p.User = &dto.UserView{ID: u.ID, Username: u.Username}
	}
	if h, ok := auth.SessionFromContext(c); ok {
		flashes, err := h.PopFlashes(c.Request.Context())
		if err != nil {
			w.log.Warn("pop flashes failed", zap.Error(err))
		}
		p.Flashes = flashes
	}

	var buf bytes.Buffer
	if err := w.views.Render(&buf, page, p); err != nil {
		w.log.Error("render failed", zap.String("page", page), zap.Error(err))
		if page == views.PageError {
			c.String(http.StatusInternalServerError, "internal server error")
			return
		}
		w.Error(c, http.StatusInternalServerError, msgInternal, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

const (
	msgInternal    = "Something went wrong."
	msgUnavailable = "The database is unavailable. Please try again later."
	msgInvalidID   = "Invalid employee record id."
	msgInvalidData = "The submitted data is invalid."
	msgNotFound    = "Employee record not found."
	msgNoPage      = "Page not found."
)

// Fail maps an error from the service layer onto the shared error page.
func (w *Web) Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dom.ErrInvalidID):
		w.Error(c, http.StatusBadRequest, msgInvalidID, err)
	case errors.Is(err, dom.ErrValidation):
		w.Error(c, http.StatusBadRequest, msgInvalidData, err)
	case errors.Is(err, dom.ErrNotFound):
		w.Error(c, http.StatusNotFound, msgNotFound, err)
	case errors.Is(err, dom.ErrStoreUnavailable):
		w.log.Error("store unavailable", zap.Error(err))
		w.Error(c, http.StatusInternalServerError, msgUnavailable, err)
	default:
		w.log.Error("request failed", zap.Error(err))
		w.Error(c, http.StatusInternalServerError, msgInternal, err)
	}
}

// Error renders the error page with the given status.
func (w *Web) Error(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	data := views.ErrorData{Status: status, Message: message}
	if w.showDetail && err != nil {
		data.Detail = err.Error()
	}
	w.Render(c, status, views.PageError, http.StatusText(status), data)
}

// NotFound handles requests that matched no route.
func (w *Web) NotFound(c *gin.Context) {
	w.Error(c, http.StatusNotFound, msgNoPage, nil)
}

// RedirectWithFlash queues msg for the next page and redirects to location.
func (w *Web) RedirectWithFlash(c *gin.Context, location, msg string) {
	if h, ok := auth.SessionFromContext(c); ok && msg != "" {
		if err := h.AddFlash(c.Request.Context(), msg); err != nil {
			w.log.Warn("flash failed", zap.Error(err))
		}
	}
	c.Redirect(http.StatusFound, location)
}
