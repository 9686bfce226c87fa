package tool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ErrTranslatorNotFound indicates the English translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

type argsValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newArgsValidator() (*argsValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, fmt.Errorf("RegisterDefaultTranslations failed: %w", err)
	}

	if err := registerCustomValidation(validate, enTrans); err != nil {
		return nil, err
	}

	return &argsValidator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// decode unmarshals raw tool arguments into dst and validates it.
// Empty or null arguments decode as an empty object.
func (v *argsValidator) decode(raw json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if err := v.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
		for _, fe := range fieldErrs {
			verr.Fields[fe.Field()] = fe.Translate(v.translator)
		}

		return verr
	}

	return nil
}

func registerCustomValidation(validate *validator.Validate, enTrans ut.Translator) error {
	err := validate.RegisterValidation("json_object", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(json.RawMessage)
		if !ok {
			return false
		}

		trimmed := bytes.TrimSpace(raw)
		return len(trimmed) > 0 && trimmed[0] == '{'
	})
	if err != nil {
		return fmt.Errorf("RegisterValidation json_object failed: %w", err)
	}

	err = validate.RegisterTranslation("json_object", enTrans,
		func(ut ut.Translator) error {
			return ut.Add("json_object", "{0} must be a JSON object", false)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
	if err != nil {
		return fmt.Errorf("RegisterTranslation json_object failed: %w", err)
	}

	return nil
}
