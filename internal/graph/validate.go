// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"engagecms/internal/apperr"
	"engagecms/internal/view"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Patch fields are validated by their value; absent and null skip
	// the checks.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if o, ok := f.Interface().(interface{ Validatable() any }); ok {
			return o.Validatable()
		}
		return nil
	}, view.Opt[string]{}, view.Opt[int64]{})

	return v
}

// validateArgs checks the validate tags of op and reports the first
// failing field as a Validation error.
func validateArgs(op Operation) error {
	err := validate.Struct(op)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Internal("validate arguments", err)
	}

	fe := fieldErrs[0]
	return apperr.Validation(fe.Field(), "%s", fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return field + " must be at most " + fe.Param() + " long"
		}
		return field + " must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return field + " must be at least " + fe.Param() + " long"
		}
		return field + " must be at least " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
