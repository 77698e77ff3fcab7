package validators

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

// RegisterGinValidators adds the custom tags used by request DTOs to
// gin's validator engine:
//
//	weekday  Monday..Saturday
//	hhmm     zero-padded 24h clock
//	isodatetime ISO 8601 timestamp
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	return errors.Join(
		v.RegisterValidation("weekday", Weekday),
		v.RegisterValidation("hhmm", HHMM),
		v.RegisterValidation("isodatetime", DateTime),
	)
}

func Weekday(fl validator.FieldLevel) bool {
	return doctor.IsWeekday(fl.Field().String())
}

func HHMM(fl validator.FieldLevel) bool {
	_, err := doctor.ParseClock(fl.Field().String())
	return err == nil
}

// DateTime accepts what the appointment use cases parse; surrounding
// spaces are trimmed there too.
func DateTime(fl validator.FieldLevel) bool {
	_, err := timezone.ParseDateTime(strings.TrimSpace(fl.Field().String()), time.UTC)
	return err == nil
}
