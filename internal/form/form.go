// Package form validates the two submission forms of the site.  Each
// form has a plain validation function that returns either a validated
// value or a set of field errors; rendering is left to the caller.
package form

import (
	"errors"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/tutor-booking/internal/model"
)

// Error messages shown next to fields.
const (
	MsgRequired     = "Обязательное поле"
	MsgInvalidValue = "Недопустимое значение"
)

// Errors maps a form field name to the message shown next to it.  A nil
// or empty Errors means the form is valid.
type Errors map[string]string

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// choice values contain spaces, so oneof= cannot express them
	_ = v.RegisterValidation("request_goal", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.RequestGoals, fl.Field().String())
	})
	_ = v.RegisterValidation("request_weektime", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.RequestWeekTimes, fl.Field().String())
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return model.IsWeekday(fl.Field().String())
	})
	// report errors under the form field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// collect turns validator output into Errors.
func collect(err error) Errors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		if fe.Tag() == "required" {
			out[fe.Field()] = MsgRequired
		} else {
			out[fe.Field()] = MsgInvalidValue
		}
	}
	return out
}

// BookingInput is the raw booking form.  Weekday, time and teacher are
// hidden fields echoing the booking URL.
type BookingInput struct {
	ClientName    string `form:"clientName" validate:"required"`
	ClientPhone   string `form:"clientPhone" validate:"required"`
	ClientWeekday string `form:"clientWeekday" validate:"required,weekday"`
	ClientTime    string `form:"clientTime" validate:"required"`
	ClientTeacher string `form:"clientTeacher" validate:"required,number"`
}

// Booking is a validated booking submission.
type Booking struct {
	Name      string
	Phone     string
	Day       string
	Time      string
	TeacherID uint64
}

// ValidateBooking trims and checks in.
func ValidateBooking(in BookingInput) (Booking, Errors) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	in.ClientWeekday = strings.TrimSpace(in.ClientWeekday)
	in.ClientTime = strings.TrimSpace(in.ClientTime)
	in.ClientTeacher = strings.TrimSpace(in.ClientTeacher)

	errs := collect(validate.Struct(in))
	var id uint64
	if !errs.Has("clientTeacher") {
		// ids are signed 64-bit in the store
		n, err := strconv.ParseUint(in.ClientTeacher, 10, 63)
		if err != nil || n == 0 {
			if errs == nil {
				errs = Errors{}
			}
			errs["clientTeacher"] = MsgInvalidValue
		}
		id = n
	}
	if len(errs) > 0 {
		return Booking{}, errs
	}
	return Booking{
		Name:      in.ClientName,
		Phone:     in.ClientPhone,
		Day:       in.ClientWeekday,
		Time:      in.ClientTime,
		TeacherID: id,
	}, nil
}

// RequestInput is the raw "find me a tutor" form.
type RequestInput struct {
	ClientGoal     string `form:"clientGoal" validate:"required,request_goal"`
	ClientWeektime string `form:"clientWeektime" validate:"required,request_weektime"`
	ClientName     string `form:"clientName" validate:"required"`
	ClientPhone    string `form:"clientPhone" validate:"required"`
}

// DefaultRequestInput is the request form as first shown.
func DefaultRequestInput() RequestInput {
	return RequestInput{
		ClientGoal:     model.RequestGoals[0],
		ClientWeektime: model.RequestWeekTimes[0],
	}
}

// Request is a validated request submission.
type Request struct {
	Goal     string
	WeekTime string
	Name     string
	Phone    string
}

// ValidateRequest trims and checks in.
func ValidateRequest(in RequestInput) (Request, Errors) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	if errs := collect(validate.Struct(in)); len(errs) > 0 {
		return Request{}, errs
	}
	return Request{
		Goal:     in.ClientGoal,
		WeekTime: in.ClientWeektime,
		Name:     in.ClientName,
		Phone:    in.ClientPhone,
	}, nil
}
