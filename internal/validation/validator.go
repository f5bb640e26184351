package validation

import (
	"errors"
	"reflect"
	"strings"

	"lms-quiz/internal/domain"
	"lms-quiz/internal/util"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator provides request validation functionality
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

// NewValidator creates a validator that reports fields by their json/form/query tag name.
func NewValidator() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
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
	_ = v.RegisterValidation("ulid", func(fl govalidator.FieldLevel) bool {
		return util.IsValidULID(fl.Field().String())
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterTranslation("ulid", trans, func(ut ut.Translator) error {
		return ut.Add("ulid", "{0} must be a valid ULID", true)
	}, func(ut ut.Translator, fe govalidator.FieldError) string {
		t, _ := ut.T("ulid", fe.Field())
		return t
	})

	return &Validator{validate: v, trans: trans}
}

// Struct validates s and returns domain.ValidationErrors, or nil when s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs govalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.ValidationError{
			Field:   fe.Field(),
			Code:    codeFor(fe.Tag()),
			Message: fe.Translate(v.trans),
			Value:   valueOf(fe),
		})
	}
	return out
}

// ValidateQuizID checks a quiz id path parameter.
func (v *Validator) ValidateQuizID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !util.IsValidULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	return nil
}

func codeFor(tag string) string {
	switch tag {
	case "required", "required_without", "required_with":
		return "MISSING_FIELD"
	case "min", "max", "gte", "lte", "gt", "lt", "len":
		return "OUT_OF_RANGE"
	default:
		return "INVALID_FORMAT"
	}
}

func valueOf(fe govalidator.FieldError) interface{} {
	if fe.Tag() == "required" {
		return nil
	}
	switch val := fe.Value().(type) {
	case string:
		if len(val) > 100 {
			return val[:100]
		}
		return val
	case int, int64, float64, bool:
		return val
	default:
		return nil
	}
}
