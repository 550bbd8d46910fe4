// Package router registers the site routes and their middleware.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tutor-booking/internal/handler"
)

// Handlers bundles the handlers mounted by RegisterRoutes.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Requests *handler.RequestHandler
	Bookings *handler.BookingHandler
	Health   *handler.HealthHandler
}

// Options toggles per-deployment route middleware.
type Options struct {
	CSRF bool
	// Limiter guards the form submissions.  Nil means no limit.
	Limiter echo.MiddlewareFunc
	// SecureCookies marks the CSRF cookie Secure.
	SecureCookies bool
}

// healthPath is exempt from the trailing slash rewrite.
const healthPath = "/healthz"

// Pre returns the middleware that must run before routing: every page
// path is served with a trailing slash.
func Pre() echo.MiddlewareFunc {
	return echomw.AddTrailingSlashWithConfig(echomw.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == healthPath },
	})
}

// RegisterRoutes mounts the pages, the two forms and the health check.
func RegisterRoutes(e *echo.Echo, h Handlers, opt Options) {
	e.GET(healthPath, h.Health.Health)

	var pageMW []echo.MiddlewareFunc
	if opt.CSRF {
		pageMW = append(pageMW, echomw.CSRFWithConfig(echomw.CSRFConfig{
			TokenLookup:    "form:csrf",
			CookieName:     "_csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   opt.SecureCookies,
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}
	limiter := opt.Limiter
	if limiter == nil {
		limiter = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	g := e.Group("", pageMW...)
	g.GET("/", h.Catalog.Home)
	g.GET("/goals/:goal/", h.Catalog.Goal)
	g.GET("/profiles/:id/", h.Catalog.Profile)
	g.GET("/all/", h.Catalog.All)

	g.GET("/request/", h.Requests.Form)
	g.POST("/request/", h.Requests.Submit, limiter)

	g.GET("/booking/:id/:day/:time/", h.Bookings.Form)
	g.POST("/booking/:id/:day/:time/", h.Bookings.Submit, limiter)
}
