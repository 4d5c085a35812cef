package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	playground "github.com/go-playground/validator/v10"

	"travelcms/constants"
	"travelcms/errors"
	"travelcms/models"
)

// TagName is the struct tag read by both gin binding and the client-side validator.
const TagName = "binding"

const dateLayout = "2006-01-02"

// FieldError is one entry of a `{detail: [...]}` error body.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func (f FieldError) String() string {
	if len(f.Loc) == 0 {
		return f.Msg
	}
	return strings.Join(f.Loc, ".") + ": " + f.Msg
}

// Render joins entries one per line as "<loc>: <msg>".
func Render(details []FieldError) string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

var (
	once     sync.Once
	instance *playground.Validate
)

// Default returns the process-wide validator reading `binding` tags.
func Default() *playground.Validate {
	once.Do(func() {
		instance = playground.New()
		instance.SetTagName(TagName)
		Configure(instance)
	})
	return instance
}

// Configure makes v report fields by their json names.
func Configure(v *playground.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates in against its binding tags.
func Struct(in any) error {
	return Default().Struct(in)
}

// Details converts validator errors into detail entries under the given
// location prefix ("body"). It returns nil for any other error.
func Details(err error, prefix string) []FieldError {
	var verrs playground.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		loc := []string{}
		if prefix != "" {
			loc = append(loc, prefix)
		}
		path := strings.Split(fe.Namespace(), ".")
		if len(path) > 1 {
			path = path[1:]
		}
		loc = append(loc, path...)
		out = append(out, FieldError{Loc: loc, Msg: Message(fe)})
	}
	return out
}

// Message renders a single failed constraint.
func Message(fe playground.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if isText {
			return "too short"
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isText {
			return "too long"
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "email":
		return "invalid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "invalid date, expected " + fe.Param()
	}
	return fmt.Sprintf("failed on %s", fe.Tag())
}

// ValidateGroupTrip checks the date range of a trip after a create or a
// partial update has been applied.
func ValidateGroupTrip(trip *models.GroupTrip) error {
	if trip.StartDate == "" || trip.EndDate == "" {
		return nil
	}
	start, err := time.Parse(dateLayout, trip.StartDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "start_date must be YYYY-MM-DD", err)
	}
	end, err := time.Parse(dateLayout, trip.EndDate)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "end_date must be YYYY-MM-DD", err)
	}
	if end.Before(start) {
		return errors.NewAppError(errors.ErrCodeValidation, "end_date must not be before start_date", nil)
	}
	return nil
}

// ValidateRole accepts the two staff roles.
func ValidateRole(role string) error {
	switch role {
	case constants.RoleAdmin, constants.RoleEditor:
		return nil
	}
	return errors.NewAppError(errors.ErrCodeInvalidRole, "role must be admin or editor", nil)
}
