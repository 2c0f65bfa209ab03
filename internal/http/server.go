package httpapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/console"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/handlers"
	"github.com/ccmadmin/ccm-admin/internal/i18n"
	"github.com/ccmadmin/ccm-admin/internal/logging"
	"github.com/ccmadmin/ccm-admin/internal/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h *handlers.Handlers
	e *echo.Echo
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, svc *admin.Service, tree *apptree.Provider, cons *console.Console, catalog *i18n.Catalog, sessions *scs.SessionManager) (*EchoServer, error) {
	if svc == nil {
		return nil, errors.New("admin service is required")
	}
	if tree == nil {
		return nil, errors.New("application tree provider is required")
	}
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}

	h := &handlers.Handlers{
		Cfg:      cfg,
		Service:  svc,
		Tree:     tree,
		Console:  cons,
		Catalog:  catalog,
		Sessions: sessions,
	}
	e := echo.New()
	e.Logger = slog.Default()

	es := &EchoServer{h: h, e: e}
	e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes()
	return es, nil
}

func (es *EchoServer) registerRoutes() {
	es.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:        uuid.NewString,
		RequestIDHandler: bindRequestID,
	}))
	es.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:     true,
		LogMethod:     true,
		LogURIPath:    true,
		LogLatency:    true,
		LogError:      true,
		LogValuesFunc: logRequest,
	}))
	es.e.Use(recordRoute)
	es.e.Use(middleware.Recover())
	es.e.Use(es.locale)

	es.e.GET("/healthz", es.h.HandleHealthz)
	es.e.Static("/static", "web/static")

	site := es.e.Group("")
	site.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   es.h.Cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	site.GET("/login", es.h.HandleLoginGet)
	site.POST("/login", es.h.HandleLoginPost)
	site.POST("/logout", es.h.HandleLogoutPost)

	authed := site.Group("")
	authed.Use(authn.RequireAuth(es.h.Sessions, es.h.Service.Store()))
	authed.GET("/", es.h.HandleDashboard)
	authed.GET("/users", es.h.HandleUsers)
	authed.GET("/groups", es.h.HandleGroups)
	authed.GET("/roles", es.h.HandleRoles)
	authed.GET("/sites", es.h.HandleSites)
	authed.GET("/applications", es.h.HandleApplications)
	authed.GET("/applications/:appID/page-models", es.h.HandlePageModels)
	authed.GET("/configuration", es.h.HandleConfiguration)
	authed.GET("/api/tree/children", es.h.HandleTreeChildren)

	editors := authed.Group("")
	editors.Use(authn.RequireRole(auth.RoleAdmin))

	editors.POST("/users", es.h.HandleUserCreate)
	editors.POST("/users/cancel", es.h.HandleUserCancel)
	editors.POST("/users/:id", es.h.HandleUserUpdate)
	editors.POST("/users/:id/cancel", es.h.HandleUserCancel)
	editors.POST("/users/:id/delete", es.h.HandleUserDelete)

	editors.POST("/groups", es.h.HandleGroupCreate)
	editors.POST("/groups/cancel", es.h.HandleGroupCancel)
	editors.POST("/groups/:id", es.h.HandleGroupUpdate)
	editors.POST("/groups/:id/cancel", es.h.HandleGroupCancel)
	editors.POST("/groups/:id/delete", es.h.HandleGroupDelete)
	editors.POST("/groups/:id/members", es.h.HandleGroupMemberAdd)
	editors.POST("/groups/:id/members/:userID/delete", es.h.HandleGroupMemberRemove)

	editors.POST("/roles", es.h.HandleRoleCreate)
	editors.POST("/roles/cancel", es.h.HandleRoleCancel)
	editors.POST("/roles/:id", es.h.HandleRoleUpdate)
	editors.POST("/roles/:id/cancel", es.h.HandleRoleCancel)
	editors.POST("/roles/:id/delete", es.h.HandleRoleDelete)
	editors.POST("/roles/:id/members", es.h.HandleRoleMemberAdd)
	editors.POST("/roles/:id/members/:kind/:partyID/delete", es.h.HandleRoleMemberRemove)

	editors.POST("/sites", es.h.HandleSiteCreate)
	editors.POST("/sites/cancel", es.h.HandleSiteCancel)
	editors.POST("/sites/:id", es.h.HandleSiteUpdate)
	editors.POST("/sites/:id/cancel", es.h.HandleSiteCancel)
	editors.POST("/sites/:id/delete", es.h.HandleSiteDelete)

	editors.POST("/applications", es.h.HandleApplicationCreate)
	editors.POST("/applications/cancel", es.h.HandleApplicationCancel)
	editors.POST("/applications/:id", es.h.HandleApplicationUpdate)
	editors.POST("/applications/:id/cancel", es.h.HandleApplicationCancel)
	editors.POST("/applications/:id/delete", es.h.HandleApplicationDelete)

	editors.POST("/applications/:appID/page-models", es.h.HandlePageModelCreate)
	editors.POST("/applications/:appID/page-models/cancel", es.h.HandlePageModelCancel)
	editors.POST("/page-models/:id", es.h.HandlePageModelUpdate)
	editors.POST("/page-models/:id/cancel", es.h.HandlePageModelCancel)
	editors.POST("/page-models/:id/delete", es.h.HandlePageModelDelete)
	editors.POST("/page-models/:id/publish", es.h.HandlePageModelPublish)

	editors.POST("/configuration/:name", es.h.HandleConfigurationUpdate)
	editors.POST("/configuration/:name/cancel", es.h.HandleConfigurationCancel)

	editors.GET("/console", es.h.HandleConsoleGet)
	editors.POST("/console", es.h.HandleConsolePost)
}

type routeSlotKey struct{}

// routeSlot carries the matched route template from the echo router back out
// to the metrics layer, which only sees the outer request.
type routeSlot struct {
	route string
}

func routeSlotFromContext(ctx context.Context) *routeSlot {
	slot, _ := ctx.Value(routeSlotKey{}).(*routeSlot)
	return slot
}

func routeLabel(ctx context.Context) string {
	if slot := routeSlotFromContext(ctx); slot != nil && slot.route != "" {
		return slot.route
	}
	return "unmatched"
}

// bindRequestID exposes the request id to handlers and scopes the request
// logger to it.
func bindRequestID(c *echo.Context, requestID string) {
	c.Set(handlers.ContextKeyRequestID, requestID)
	req := c.Request()
	logger := slog.Default().With("request_id", requestID)
	c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), logger)))
}

func recordRoute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if slot := routeSlotFromContext(c.Request().Context()); slot != nil {
			slot.route = c.Path()
		}
		return next(c)
	}
}

// logRequest writes the access log line. A returned error has not reached the
// error handler yet, so its status is derived here.
func logRequest(c *echo.Context, v middleware.RequestLoggerValues) error {
	status := v.Status
	if v.Error != nil {
		status = httpStatusFromError(v.Error)
	}
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{
		"method", v.Method,
		"path", v.URIPath,
		"route", c.Path(),
		"status", status,
		"latency_ms", v.Latency.Milliseconds(),
	}
	if v.Error != nil {
		attrs = append(attrs, "error", v.Error)
	}
	ctx := c.Request().Context()
	logging.FromContext(ctx).Log(ctx, level, "http request", attrs...)
	return nil
}

// locale binds the translator for the request and persists an explicit
// ?lang= choice in a cookie.
func (es *EchoServer) locale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		catalog := es.h.Catalog
		if catalog == nil {
			return next(c)
		}
		tag, persist := catalog.Resolve(c.Request())
		if persist {
			i18n.SetLanguageCookie(c.Response(), tag, es.h.Cfg.AuthCookieSecure)
		}
		c.Set(handlers.ContextKeyTranslator, catalog.Translator(tag))
		return next(c)
	}
}

// Handler returns the root HTTP handler: request metrics around the
// session-loading echo router.
func (es *EchoServer) Handler() http.Handler {
	var inner http.Handler = es.e
	if es.h.Sessions != nil {
		inner = es.h.Sessions.LoadAndSave(inner)
	}

	byRoute := promhttp.WithLabelFromCtx("route", routeLabel)
	inner = promhttp.InstrumentHandlerDuration(metrics.HTTPRequestDuration, inner, byRoute)
	inner = promhttp.InstrumentHandlerCounter(metrics.HTTPRequestsTotal, inner, byRoute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), routeSlotKey{}, &routeSlot{})
		inner.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if err == nil {
		return
	}

	status := httpStatusFromError(err)
	switch status {
	case http.StatusInternalServerError:
		if renderErr := es.h.RenderError(c, err); renderErr != nil {
			c.Logger().Error("render error page failed", "error", renderErr)
		}
	case http.StatusNotFound:
		_ = handlers.RenderNotFound(c)
	case http.StatusForbidden:
		if es.h.Catalog == nil {
			_ = c.String(status, http.StatusText(status))
			return
		}
		_ = es.h.RenderForbidden(c)
	default:
		_ = c.String(status, http.StatusText(status))
	}
}

func httpStatusFromError(err error) int {
	var coder interface{ StatusCode() int }
	if errors.As(err, &coder) {
		if code := coder.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}
