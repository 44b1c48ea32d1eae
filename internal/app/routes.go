package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leodalati/Employee-Record-Management-System/internal/auth"
	"github.com/leodalati/Employee-Record-Management-System/internal/config"
	"github.com/leodalati/Employee-Record-Management-System/internal/handlers"
	"github.com/leodalati/Employee-Record-Management-System/internal/metrics"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
	"github.com/leodalati/Employee-Record-Management-System/internal/service"
	"github.com/leodalati/Employee-Record-Management-System/internal/views"
)

// Deps are the process-wide resources the router is built from.
type Deps struct {
	Config    config.Config
	Logger    *zap.Logger
	Employees repo.EmployeeRepo
	Users     repo.UserRepo
	Sessions  auth.Store
	Metrics   *metrics.Metrics
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

// NewRouter builds the engine and registers all routes.
func NewRouter(d Deps) (*gin.Engine, error) {
	renderer, err := views.New(views.Pages...)
	if err != nil {
		return nil, err
	}
	userSvc, err := service.NewUserService(d.Users, d.HashCost)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	r := newEngine(d.Config, d.Logger, d.Metrics)
	web := handlers.NewWeb(renderer, d.Logger, !d.Config.App.IsProduction())
	sessions := auth.NewManager(d.Sessions, d.Config.Session.TTL.Duration(), d.Config.Session.CookieSecure, d.Logger)

	Setup(r, d.Config, d.Metrics, web, sessions, userSvc, service.NewEmployeeService(d.Employees), d.Logger)
	return r, nil
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, m *metrics.Metrics, web *handlers.Web,
	sessions *auth.Manager, userSvc *service.UserService, empSvc *service.EmployeeService, log *zap.Logger) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.StaticFS("/static", views.Static())

	site := r.Group("", sessions.Middleware(web.Fail))
	site.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, handlers.ListPath) })

	authHandler := handlers.NewAuthHandler(sessions, userSvc, web, log)
	registerAuthRoutes(site, authHandler)

	protected := site.Group("", sessions.RequireUser(userSvc, web.Fail))
	registerEmployeeRoutes(protected, handlers.NewEmployeeHandler(empSvc, web))

	r.NoRoute(sessions.Middleware(web.Fail), web.NotFound)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func registerEmployeeRoutes(g *gin.RouterGroup, h *handlers.EmployeeHandler) {
	g.GET("/employee_records", h.List)
	g.GET("/employee_records/create", h.CreateForm)
	g.POST("/employee_records/create", h.Create)
	g.GET("/employee_records/:id/edit", h.EditForm)
	g.POST("/employee_records/:id/update", h.Update)
	g.GET("/employee_records/delete", h.DeleteList)
	g.POST("/employee_records/delete/:id", h.Delete)
}

func registerAuthRoutes(g *gin.RouterGroup, h *handlers.AuthHandler) {
	g.GET("/login", h.LoginForm)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}
