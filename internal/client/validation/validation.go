// Package validation checks user-entered payloads before they are sent to the
// API, using go-playground/validator with English messages keyed by JSON
// field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/trustlayerlabs/academy/internal/common"
)

var (
	requiredText = "this field is required"
	emailText    = "must be a valid email address"
	urlText      = "must be a valid URL"
	mismatchText = "passwords do not match"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// Error lists the failing fields. It matches common.ErrValidation.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == common.ErrValidation
}

func setup() {
	validate = validator.New()

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name[:1]) + fld.Name[1:]
		}
		return name
	})

	registerText("required", requiredText)
	registerText("email", emailText)
	registerText("url", urlText)
	registerText("eqfield", mismatchText)
}

// registerText overrides the default translation for tag with a fixed text.
func registerText(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v and returns *Error listing every failing field, or nil.
func Struct(v any) error {
	once.Do(setup)

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = fe.Translate(translator)
	}
	return out
}
