package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/repository"
)

type errorView struct {
	Code    int
	Message string
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Некорректный запрос",
	http.StatusForbidden:           "Доступ запрещён",
	http.StatusNotFound:            "Страница не найдена",
	http.StatusMethodNotAllowed:    "Метод не поддерживается",
	http.StatusTooManyRequests:     "Слишком много запросов, попробуйте позже",
	http.StatusInternalServerError: "Внутренняя ошибка сервера",
}

// NewHTTPErrorHandler renders every unhandled error as the error page.
// Repository not-found errors become 404.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := ""
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			code = he.Code
			if s, ok := he.Message.(string); ok && s != http.StatusText(code) {
				msg = s
			}
		case errors.Is(err, repository.ErrTeacherNotFound),
			errors.Is(err, repository.ErrGoalNotFound),
			errors.Is(err, repository.ErrSlotNotFound):
			code = http.StatusNotFound
		}
		if msg == "" {
			msg = statusMessages[code]
			if msg == "" {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if rerr := c.Render(code, "error.html", errorView{Code: code, Message: msg}); rerr != nil {
			log.Error("render error page", zap.Error(rerr))
			_ = c.String(code, fmt.Sprintf("%d %s", code, msg))
		}
	}
}
