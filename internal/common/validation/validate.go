package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// register function to get tag name from json tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerNoSpacesAtStartOrEnd()
	registerDecimalGreaterThan()
	registerAccountNumber()
}

type ErrorValidateResponse struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorValidateResponse) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var messages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"numeric":            "must contain digits only",
	"oneof":              "must be one of",
	"min":                "must be at least",
	"max":                "is too long",
	"noStartEndSpaces":   "must not start or end with spaces",
	"decimalGreaterThan": "must be a valid number greater than",
	"accountNumber":      "must have between 10 and 16 digits",
}

func ValidateStruct(toValidate interface{}) error {
	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				msg, found := messages[valErr.Tag()]
				if !found {
					msg = valErr.Tag()
				}
				errs = multierror.Append(errs, ErrorValidateResponse{
					Code:    strings.ToUpper(valErr.Tag()),
					Field:   valErr.Field(),
					Message: strings.TrimSpace(fmt.Sprintf("%s %s", msg, valErr.Param())),
				})
			}
		}
	}

	return errs.ErrorOrNil()
}

// ValidateVar validates a single value against a tag, e.g. ValidateVar(email, "email").
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func registerDecimalGreaterThan() {
	validate.RegisterValidation("decimalGreaterThan", func(fl validator.FieldLevel) bool {
		data, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		value, err := decimal.NewFromString(strings.TrimSpace(data))
		if err != nil {
			return false
		}

		parameterValue, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}

		return value.GreaterThan(parameterValue)
	})
}

func registerNoSpacesAtStartOrEnd() {
	validate.RegisterValidation("noStartEndSpaces", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		return str == "" || (str[0] != ' ' && str[len(str)-1] != ' ')
	})
}

func registerAccountNumber() {
	validate.RegisterValidation("accountNumber", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		if len(str) < 10 || len(str) > 16 {
			return false
		}
		for _, r := range str {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
