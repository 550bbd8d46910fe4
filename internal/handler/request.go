package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tutor-booking/internal/form"
	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/service"
)

// RequestHandler serves the "find me a tutor" form.
type RequestHandler struct {
	Requests *service.RequestService
}

type requestView struct {
	Form      form.RequestInput
	Errors    form.Errors
	Goals     []string
	WeekTimes []string
}

func newRequestView(in form.RequestInput, errs form.Errors) requestView {
	return requestView{Form: in, Errors: errs, Goals: model.RequestGoals, WeekTimes: model.RequestWeekTimes}
}

// Form renders an empty request form with the default choices selected.
func (h *RequestHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "request.html", newRequestView(form.DefaultRequestInput(), nil))
}

// Submit validates and stores a request.  An invalid form is rendered
// again with 422 and nothing is stored.
func (h *RequestHandler) Submit(c echo.Context) error {
	var in form.RequestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	req, errs := form.ValidateRequest(in)
	if len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "request.html", newRequestView(in, errs))
	}
	r, err := h.Requests.Submit(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "request_done.html", r)
}
