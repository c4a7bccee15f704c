package detector

import (
	"os"
	"os/user"
	"time"
)

// Env is everything detectors read from the outside world. Tests replace
// the functions; DefaultEnv wires the running process.
type Env struct {
	LookupEnv   func(key string) (string, bool)
	Getwd       func() (string, error)
	Hostname    func() (string, error)
	CurrentUser func() (*user.User, error)
	Now         func() time.Time

	// ExitCode is the status of the previous command, as passed by the shell.
	ExitCode int
	// Jobs is the number of background jobs reported by the shell.
	Jobs int
	// CwdMaxDepth caps how many trailing path components the cwd segment
	// shows; zero means unlimited.
	CwdMaxDepth int
	// Shell is the shell the prompt is rendered for: bare, bash or zsh.
	Shell string
}

// DefaultEnv reads from the current process.
func DefaultEnv() Env {
	return Env{
		LookupEnv:   os.LookupEnv,
		Getwd:       os.Getwd,
		Hostname:    os.Hostname,
		CurrentUser: user.Current,
		Now:         time.Now,
		Shell:       "bare",
	}
}

// WithDefaults fills any nil function from DefaultEnv.
func (e Env) WithDefaults() Env {
	def := DefaultEnv()
	if e.LookupEnv == nil {
		e.LookupEnv = def.LookupEnv
	}
	if e.Getwd == nil {
		e.Getwd = def.Getwd
	}
	if e.Hostname == nil {
		e.Hostname = def.Hostname
	}
	if e.CurrentUser == nil {
		e.CurrentUser = def.CurrentUser
	}
	if e.Now == nil {
		e.Now = def.Now
	}
	if e.Shell == "" {
		e.Shell = def.Shell
	}
	return e
}

// Getenv returns the value of key, or "" when it is unset.
func (e Env) Getenv(key string) string {
	value, _ := e.LookupEnv(key)
	return value
}

// MapEnv returns a LookupEnv backed by a fixed map.
func MapEnv(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}
