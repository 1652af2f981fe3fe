package req

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/xy-planning-network/storefront"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
//
// Message phrases the issue for shoppers, e.g.: "limit must be at most 100",
// so the client can show it next to the filter control that set the query param.
type ValidationError struct {
	Field   string `json:"field"`
	Got     any    `json:"got"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationErrors is a set of ValidationError.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msg := fmt.Sprintf("field=%q rule=%q got=%q", err.Field, err.Rule, fmt.Sprint(err.Got))
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "\n")
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	var errs struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}

	for _, err := range v {
		errs.E = append(errs.E, err)
	}

	return json.Marshal(errs)
}

func (ValidationErrors) Unwrap() error { return storefront.ErrNotValid }

// message phrases the failed rule tag, with its param, for field.
// kind is the kind of the field's value; slices count items and strings count characters.
func message(field, tag, param string, kind reflect.Kind) string {
	unit := ""
	switch kind {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	case reflect.String:
		unit = " characters"
	}

	switch tag {
	case "required":
		return field + " is required"
	case "enum", "oneof":
		return field + " is not one of the accepted values"
	case "len":
		return fmt.Sprintf("%s must have exactly %s%s", field, param, unit)
	case "min", "gte":
		if unit != "" {
			return fmt.Sprintf("%s must have at least %s%s", field, param, unit)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		if unit != "" {
			return fmt.Sprintf("%s must have at most %s%s", field, param, unit)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	default:
		return field + " is not valid"
	}
}

// conversionMessage phrases a query param that cannot be converted into kind.
func conversionMessage(field string, kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field + " must be a whole number"
	case reflect.Float32, reflect.Float64:
		return field + " must be a number"
	case reflect.Bool:
		return field + " must be true or false"
	default:
		return field + " is not valid"
	}
}
