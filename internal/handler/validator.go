package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/theater-ticketing/internal/model"
)

// RequestValidator adapts validator/v10 to echo.Validator.  Field names in
// errors are the JSON names of the request structs.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator builds a RequestValidator.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Validate implements echo.Validator.  The first failing field is reported
// as a *model.ValidationError.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return &model.ValidationError{Field: topField(fe), Reason: reason(fe)}
	}
	return &model.ValidationError{Reason: err.Error()}
}

// topField strips the struct name and any slice index from the namespace,
// so "createHoldRequest.seat_ids[2]" becomes "seat_ids".
func topField(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.IndexByte(ns, '['); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s element(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return "ids must be positive"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}
