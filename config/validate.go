package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports field names by their yaml key so that errors point at
// the entry the operator has to fix.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateFile runs struct validation and converts the first failure into a ConfigError.
func validateFile(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("config: validate: %w", err)
	}

	fe := verrs[0]
	key := yamlPath(fe.Namespace())
	if fe.Tag() == "required" {
		return missingKey(key)
	}
	return &ConfigError{Key: key, Reason: fmt.Sprintf("must satisfy %s=%s, got %v", fe.Tag(), fe.Param(), deref(fe.Value()))}
}

// yamlPath turns "modelFile.weights.rent_to_cost" or "marketFile.markets[46901].vacancy_rate"
// into "weights.rent_to_cost" and "markets.46901.vacancy_rate".
func yamlPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}
