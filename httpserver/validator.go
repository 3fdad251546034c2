package httpserver

import (
	"reflect"
	"smdb/errs"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "param", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return errs.Errorf(errs.EINVALID, "%s", formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			if field == "" {
				field = fe.StructField()
			}
			parts = append(parts, field+" failed on "+fe.Tag())
		}
		return "validation error: " + strings.Join(parts, "; ")
	}
	return "validation error"
}
