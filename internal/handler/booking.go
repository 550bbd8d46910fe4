package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tutor-booking/internal/form"
	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/repository"
	"github.com/iliyamo/tutor-booking/internal/service"
)

// MsgSlotTaken is shown when a slot was booked by someone else.
const MsgSlotTaken = "Это время уже занято, выберите другое в профиле преподавателя"

// BookingHandler serves the trial lesson booking form.
type BookingHandler struct {
	Bookings *service.BookingService
}

type bookingView struct {
	Draft        *service.Draft
	Form         form.BookingInput
	Errors       form.Errors
	HiddenErrors []string
	Conflict     string
}

// slotParams reads teacher id, weekday and time from the booking URL.
func slotParams(c echo.Context) (uint64, string, string, error) {
	id, err := teacherID(c)
	if err != nil {
		return 0, "", "", err
	}
	day, err1 := url.PathUnescape(c.Param("day"))
	tm, err2 := url.PathUnescape(c.Param("time"))
	if err1 != nil || err2 != nil || !model.IsWeekday(day) {
		return 0, "", "", echo.NewHTTPError(http.StatusNotFound)
	}
	return id, day, tm, nil
}

// Form renders the booking form for the slot in the URL.  Unknown
// teachers, days and slots are 404.
func (h *BookingHandler) Form(c echo.Context) error {
	id, day, tm, err := slotParams(c)
	if err != nil {
		return err
	}
	draft, err := h.Bookings.Prepare(c.Request().Context(), id, day, tm)
	if err != nil {
		return err
	}
	v := bookingView{
		Draft: draft,
		Form: form.BookingInput{
			ClientWeekday: day,
			ClientTime:    tm,
			ClientTeacher: strconv.FormatUint(id, 10),
		},
	}
	if draft.Taken {
		v.Conflict = MsgSlotTaken
	}
	return c.Render(http.StatusOK, "booking.html", v)
}

// Submit books the slot named by the hidden form fields.  Validation
// errors are 422, a slot booked meanwhile is 409 unless overbooking is
// allowed.
func (h *BookingHandler) Submit(c echo.Context) error {
	id, day, tm, err := slotParams(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	draft, err := h.Bookings.Prepare(ctx, id, day, tm)
	if err != nil {
		return err
	}

	var in form.BookingInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	b, errs := form.ValidateBooking(in)
	if len(errs) > 0 {
		v := bookingView{Draft: draft, Form: in, Errors: errs}
		for _, f := range []string{"clientWeekday", "clientTime", "clientTeacher"} {
			if errs.Has(f) {
				v.HiddenErrors = append(v.HiddenErrors, f+": "+errs.Get(f))
			}
		}
		return c.Render(http.StatusUnprocessableEntity, "booking.html", v)
	}

	conf, err := h.Bookings.Book(ctx, b)
	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		draft.Taken = true
		return c.Render(http.StatusConflict, "booking.html", bookingView{Draft: draft, Form: in, Conflict: MsgSlotTaken})
	case err != nil:
		return err
	}
	return c.Render(http.StatusOK, "booking_done.html", conf)
}
