package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	powerlineerrors "github.com/alexisbeaulieu97/powerline/pkg/errors"
)

// ValidateConfig checks cfg against its struct tags and cross-field rules.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return powerlineerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(cfg.Segments))
	for i, name := range cfg.Segments {
		if _, dup := seen[name]; dup {
			return powerlineerrors.NewValidationError(fmt.Sprintf("segments[%d]", i), fmt.Sprintf("duplicate segment %q", name), nil)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// ValidateSegments rejects segment names for which known reports false.
func ValidateSegments(cfg *Config, known func(name string) bool) error {
	for i, name := range cfg.Segments {
		if !known(name) {
			return powerlineerrors.NewValidationError(fmt.Sprintf("segments[%d]", i), fmt.Sprintf("unknown segment %q", name), nil)
		}
	}
	return nil
}

// convertValidationError normalizes validator errors into powerline validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, ve.Param())
		}
		return powerlineerrors.NewValidationError(field, msg, err)
	}

	return powerlineerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName turns "Config.Segments[2]" into "segments[2]".
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return ns
}
