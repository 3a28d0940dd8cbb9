package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. Callers register their own
// struct-level rules on top.
func New() *validatorv10.Validate {
	return validatorv10.New()
}

// ErrorsToMap flattens validator errors into a field -> message map for
// problem responses.
func ErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Namespace()] = fe.Error()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
