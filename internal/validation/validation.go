// Package validation checks request payloads before anything touches storage.
// Struct rules are validator/v10 tags; month arrays get an extra set check.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"budget-backend/internal/apperr"
	"budget-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct validates s and returns an apperr validation error naming the first
// offending field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return apperr.Validation("%s", message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "uuid", "uuid4":
		return field + " must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// fieldPath drops the root struct name: "UpsertInput.months[2].fiscalMonth"
// becomes "months[2].fiscalMonth".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// MonthSet requires months to be exactly {1..12}: no month out of range, no
// duplicates, none missing.
func MonthSet(months []int) error {
	seen := make(map[int]bool, models.LastFiscalMonth)
	for _, m := range months {
		if m < models.FirstFiscalMonth || m > models.LastFiscalMonth {
			return apperr.Validation("fiscalMonth %d is out of range %d-%d", m, models.FirstFiscalMonth, models.LastFiscalMonth)
		}
		if seen[m] {
			return apperr.Validation("fiscalMonth %d is duplicated", m)
		}
		seen[m] = true
	}

	var missing []string
	for m := models.FirstFiscalMonth; m <= models.LastFiscalMonth; m++ {
		if !seen[m] {
			missing = append(missing, fmt.Sprint(m))
		}
	}
	if len(missing) > 0 {
		return apperr.Validation("months must cover fiscal months %d-%d, missing %s",
			models.FirstFiscalMonth, models.LastFiscalMonth, strings.Join(missing, ", "))
	}
	return nil
}
