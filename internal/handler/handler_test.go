package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/repository"
	"github.com/iliyamo/tutor-booking/web"
)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := NewRenderer(web.Templates, "templates")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = NewHTTPErrorHandler(zap.NewNop())
	return e
}

func TestRendererParsesAllPages(t *testing.T) {
	r, err := NewRenderer(web.Templates, "templates")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for _, page := range []string{
		"index.html", "goal.html", "profile.html", "all.html",
		"request.html", "request_done.html", "booking.html", "booking_done.html", "error.html",
	} {
		if _, ok := r.pages[page]; !ok {
			t.Fatalf("page %s not parsed", page)
		}
	}
	if _, ok := r.pages[layoutFile]; ok {
		t.Fatalf("layout must not be a page")
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	e := newEcho(t)
	cases := []struct {
		err  error
		code int
		want string
	}{
		{repository.ErrTeacherNotFound, http.StatusNotFound, "Страница не найдена"},
		{repository.ErrSlotNotFound, http.StatusNotFound, "Страница не найдена"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "slow down"},
		{echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Метод не поддерживается"},
		{errors.New("boom"), http.StatusInternalServerError, "Внутренняя ошибка сервера"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		e.HTTPErrorHandler(tc.err, c)
		if rec.Code != tc.code {
			t.Fatalf("%v: status %d, want %d", tc.err, rec.Code, tc.code)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("%v: body misses %q", tc.err, tc.want)
		}
	}
}

func TestRatingFunc(t *testing.T) {
	rating := funcs["rating"].(func(*float64) string)
	zero, high := 0.0, 4.75
	if got := rating(nil); got != "нет" {
		t.Fatalf("rating(nil) = %q", got)
	}
	if got := rating(&zero); got != "0.0" {
		t.Fatalf("rating(0) = %q", got)
	}
	if got := rating(&high); got != "4.8" {
		t.Fatalf("rating(4.75) = %q", got)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := newEcho(t)
	for _, tc := range []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{errors.New("down"), http.StatusServiceUnavailable},
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
		h := &HealthHandler{DB: stubPinger{err: tc.err}}
		if err := h.Health(c); err != nil {
			t.Fatalf("Health: %v", err)
		}
		if rec.Code != tc.code {
			t.Fatalf("status %d, want %d", rec.Code, tc.code)
		}
	}
}
