// Package handler contains the echo handlers of the site pages.  Handlers
// parse the request, call a service and render a template; business rules
// live in the service package.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tutor-booking/internal/service"
)

// CatalogHandler serves the read-only pages.
type CatalogHandler struct {
	Catalog *service.CatalogService
}

// Home renders the landing page with a random sample of teachers.
func (h *CatalogHandler) Home(c echo.Context) error {
	home, err := h.Catalog.Home(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index.html", home)
}

// Goal renders the teachers of one goal.  Unknown goals are 404.
func (h *CatalogHandler) Goal(c echo.Context) error {
	page, err := h.Catalog.Goal(c.Request().Context(), c.Param("goal"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "goal.html", page)
}

// Profile renders a teacher with the weekly availability grid.
func (h *CatalogHandler) Profile(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return err
	}
	p, err := h.Catalog.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile.html", p)
}

// All renders every teacher, best rated first.
func (h *CatalogHandler) All(c echo.Context) error {
	all, err := h.Catalog.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "all.html", all)
}

// teacherID parses the :id path parameter.  Anything but a positive
// integer the store can hold (at most 2^63-1) is an unknown teacher.
func teacherID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}
