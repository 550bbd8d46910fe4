// Package app assembles the tutor booking web server from its parts.
package app

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/config"
	"github.com/iliyamo/tutor-booking/internal/database"
	"github.com/iliyamo/tutor-booking/internal/handler"
	"github.com/iliyamo/tutor-booking/internal/middleware"
	"github.com/iliyamo/tutor-booking/internal/queue"
	"github.com/iliyamo/tutor-booking/internal/repository"
	"github.com/iliyamo/tutor-booking/internal/router"
	"github.com/iliyamo/tutor-booking/internal/service"
	"github.com/iliyamo/tutor-booking/web"
)

// Deps are the external resources the server runs on.  Publisher and
// Redis may be nil.
type Deps struct {
	DB        *database.DB
	Log       *zap.Logger
	Publisher queue.Publisher
	Redis     *redis.Client
}

// NewServer wires repositories, services and handlers into an echo
// instance ready to serve.
func NewServer(cfg config.Config, d Deps) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer(web.Templates, "templates")
	if err != nil {
		return nil, err
	}

	teachers := repository.NewTeacherRepo(d.DB.DB)
	goals := repository.NewGoalRepo(d.DB.DB)
	slots := repository.NewTimetableRepo(d.DB.DB)
	bookings := repository.NewBookingRepo(d.DB.DB)
	requests := repository.NewRequestRepo(d.DB.DB)

	catalog := service.NewCatalogService(teachers, goals, slots)
	booking := service.NewBookingService(bookings, teachers, slots, d.Publisher, cfg.AllowOverbooking, d.Log)
	request := service.NewRequestService(requests, d.Publisher, d.Log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Log)

	e.Pre(router.Pre())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "same-origin",
	}))

	router.RegisterRoutes(e, router.Handlers{
		Catalog:  &handler.CatalogHandler{Catalog: catalog},
		Requests: &handler.RequestHandler{Requests: request},
		Bookings: &handler.BookingHandler{Bookings: booking},
		Health:   &handler.HealthHandler{DB: d.DB},
	}, router.Options{
		CSRF:          cfg.CSRFEnabled,
		Limiter:       middleware.NewTokenBucket(cfg.RateLimit, d.Redis, d.Log),
		SecureCookies: cfg.Production(),
	})
	return e, nil
}
