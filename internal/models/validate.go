package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("risk_tolerance", func(fl validator.FieldLevel) bool {
		return RiskTolerance(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("business_model", func(fl validator.FieldLevel) bool {
		return BusinessModel(fl.Field().String()).Valid()
	})

	return v
}

// Validate checks that every field is present and both enums hold a known value.
func (r IdeaRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "risk_tolerance":
			msgs = append(msgs, fmt.Sprintf("riskTolerance must be one of Low, Medium, High (got %q)", fe.Value()))
		case "business_model":
			msgs = append(msgs, fmt.Sprintf("businessModel must be one of %s (got %q)", joinModels(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return &ValidationError{Problems: msgs}
}

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid idea request: " + strings.Join(e.Problems, "; ")
}

func joinModels() string {
	names := make([]string, len(BusinessModels))
	for i, m := range BusinessModels {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
