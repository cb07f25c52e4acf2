package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/pkg/utils"
)

// RegisterValidators adds the civildate, clocktime and weekday binding tags and
// reports field errors under their JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	validations := map[string]validator.Func{
		"civildate": func(fl validator.FieldLevel) bool {
			_, err := utils.ParseDate(fl.Field().String())
			return err == nil
		},
		"clocktime": func(fl validator.FieldLevel) bool {
			_, err := utils.NormalizeClockTime(fl.Field().String())
			return err == nil
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return models.ValidDayOfWeek(int(fl.Field().Int()))
		},
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}
