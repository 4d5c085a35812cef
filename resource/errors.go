package resource

import (
	stderrors "errors"
	"reflect"

	"travelcms/validator"
)

// ErrDisabled is returned without a request when a lookup key is empty
// (id 0 or an empty slug).
var ErrDisabled = stderrors.New("resource: query disabled")

// ValidationError is raised before any request when an input fails its
// binding constraints.
type ValidationError struct {
	Details []validator.FieldError
}

func (e *ValidationError) Error() string {
	return validator.Render(e.Details)
}

// validate checks struct inputs (or pointers to structs) against their
// binding tags. Other inputs, such as raw maps, are left to the server.
func validate(input any) error {
	if input == nil {
		return nil
	}
	v := reflect.ValueOf(input)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	if err := validator.Struct(v.Interface()); err != nil {
		if details := validator.Details(err, "body"); len(details) > 0 {
			return &ValidationError{Details: details}
		}
		return err
	}
	return nil
}
