package core

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config key rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validate checks cfg against its `validate` struct tags. Every violation is
// reported as a *ParamError; the result wraps ErrInvalidParameter.
func Validate(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ParamError{Field: fe.Field(), Value: fe.Value(), Rule: ruleFor(fe)})
	}
	return errors.Join(errs...)
}

func ruleFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "> " + fe.Param()
	case "gte", "min":
		return ">= " + fe.Param()
	case "lt":
		return "< " + fe.Param()
	case "lte", "max":
		return "<= " + fe.Param()
	case "oneof":
		return "one of " + fe.Param()
	case "required":
		return "set"
	default:
		return fe.Tag()
	}
}
