package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"dental-jobs/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct validator with the domain tags
// registered: employment_type, experience_level and sort_option.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("employment_type", oneOfStrings(models.EmploymentTypes))
		_ = v.RegisterValidation("experience_level", oneOfStrings(models.ExperienceLevels))
		_ = v.RegisterValidation("sort_option", func(fl validator.FieldLevel) bool {
			return models.SortOption(fl.Field().String()).IsValid()
		})
		validate = v
	})
	return validate
}

func oneOfStrings(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}

// ValidateStruct runs the struct validator and reports failures in the
// same shape as schema validation.
func ValidateStruct(s interface{}) *ValidationResult {
	err := Validator().Struct(s)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID"}},
		}
	}

	out := &ValidationResult{Valid: false}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "employment_type":
		return fmt.Sprintf("must be one of %v", models.EmploymentTypes)
	case "experience_level":
		return fmt.Sprintf("must be one of %v", models.ExperienceLevels)
	case "sort_option":
		return "must be relevance, newest or salary"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
