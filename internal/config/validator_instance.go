package config

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	segmentNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("segment_name", func(fl validator.FieldLevel) bool {
			return segmentNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("theme_path", func(fl validator.FieldLevel) bool {
			path := fl.Field().String()
			if path == "" {
				return true
			}
			return isValidFilePath(path)
		})

		validateInst = v
	})

	return validateInst
}

// isValidFilePath performs syntactic validation of file paths without filesystem access
func isValidFilePath(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}

	// Check for NUL characters
	if strings.Contains(path, "\x00") {
		return false
	}

	return strings.TrimSpace(path) == path
}
