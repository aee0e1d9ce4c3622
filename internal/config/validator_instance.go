package config

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/themekit/internal/storage"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	breakpointNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("breakpoint_name", func(fl validator.FieldLevel) bool {
			return breakpointNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("storage_driver", func(fl validator.FieldLevel) bool {
			driver := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			for _, known := range storage.Drivers() {
				if driver == known {
					return true
				}
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
