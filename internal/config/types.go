// Package config loads the optional YAML settings file of the prompt.
package config

// Config mirrors the YAML settings file. Zero values mean "not set" and are
// replaced by command-line flags or built-in defaults.
type Config struct {
	// Theme is a theme file path; "~/" is expanded and relative paths are
	// resolved against the settings file's directory.
	Theme string `yaml:"theme" validate:"theme_path"`
	// Shell selects prompt escaping: bare, bash or zsh.
	Shell string `yaml:"shell" validate:"omitempty,oneof=bare bash zsh"`
	// Segments is the detector order. Empty means the built-in order.
	Segments []string `yaml:"segments" validate:"omitempty,dive,segment_name"`
	// CwdMaxDepth limits the components shown by the cwd segment; 0 is unlimited.
	CwdMaxDepth int    `yaml:"cwd_max_depth" validate:"min=0,max=64"`
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Shell:    "bare",
		LogLevel: "warn",
	}
}
