package validator

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
)

// Validator validates request schemas. It reads the same `binding` tags gin uses so a
// schema validates identically on both sides of the wire.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Validate runs struct validation and converts failures into a validation AppError.
func (v *Validator) Validate(obj interface{}) error {
	if err := v.v.Struct(obj); err != nil {
		return Translate(err)
	}
	return nil
}

var ginOnce sync.Once

// RegisterGin makes gin's `binding` validator report JSON field names.
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonName)
		}
	})
}

// Translate converts binding and validation errors into AppErrors.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
			msgs = append(msgs, describe(fe))
		}
		return apperrors.NewValidation(strings.Join(msgs, "; "), fields, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return apperrors.NewTooLarge(maxErr.Limit)
	case stderrors.Is(err, io.EOF):
		return apperrors.NewBadRequest("request body is empty", err)
	case stderrors.As(err, &syntaxErr):
		return apperrors.NewBadRequest("malformed JSON body", err)
	case stderrors.As(err, &typeErr):
		return apperrors.NewValidation(
			fmt.Sprintf("%s has the wrong type", typeErr.Field),
			[]string{typeErr.Field}, err)
	}

	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	return apperrors.NewBadRequest(err.Error(), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match the layout %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s failed the %s check", fe.Field(), fe.Tag())
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
