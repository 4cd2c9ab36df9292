package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/newsdesk/ecode"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// errorMessages is a nested map of languages to validation tags to custom error messages.
// The first %s is the field label, the optional second one the tag parameter.
var errorMessages = map[string]map[string]string{
	"en": {
		"required": "%s is required",
		"email":    "%s must be a valid email address",
		"min":      "%s must be at least %s characters long",
		"max":      "%s must be no longer than %s characters",
		"oneof":    "%s must be one of %s",
		"url":      "%s must be a valid URL",
		"eqfield":  "%s must match %s",
	},
}

// parseMessage constructs a friendly error message based on the validation tag and custom messages.
func parseMessage(label string, e validator.FieldError, lang ...string) string {
	msgLang := "en"
	if len(lang) > 0 && lang[0] != "" {
		msgLang = lang[0]
	}
	if msgs, exists := errorMessages[msgLang]; exists {
		if msg, exists := msgs[e.Tag()]; exists {
			switch strings.Count(msg, "%s") {
			case 1:
				return fmt.Sprintf(msg, label)
			case 2:
				return fmt.Sprintf(msg, label, e.Param())
			}
		}
	}
	return fmt.Sprintf("%s is invalid: %s", label, e.Tag())
}

type fieldMessage struct {
	key     string
	message string
}

// collect returns the failures in struct field order.
func collect(s any, lang ...string) []fieldMessage {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []fieldMessage{{key: "", message: err.Error()}}
	}

	structType := reflect.TypeOf(s)
	for structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	out := make([]fieldMessage, 0, len(validationErrs))
	for _, e := range validationErrs {
		field, _ := structType.FieldByName(e.StructField())
		key := e.StructField()
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			key = strings.Split(jsonTag, ",")[0]
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = key
		}
		out = append(out, fieldMessage{key: key, message: parseMessage(label, e, lang...)})
	}
	return out
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
func ValidateStruct(s any, lang ...string) map[string]string {
	validationErrors := make(map[string]string)
	for _, fm := range collect(s, lang...) {
		if _, seen := validationErrors[fm.key]; !seen {
			validationErrors[fm.key] = fm.message
		}
	}
	return validationErrors
}

// Validate validates a struct and returns an *ecode.Error of kind validation,
// or nil. The error message is the first failing field in declaration order.
func Validate(s any, lang ...string) error {
	failures := collect(s, lang...)
	if len(failures) == 0 {
		return nil
	}

	fields := make(map[string]string, len(failures))
	for _, fm := range failures {
		if _, seen := fields[fm.key]; !seen {
			fields[fm.key] = fm.message
		}
	}
	return ecode.Validation(failures[0].message, fields)
}
