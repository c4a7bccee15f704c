package detector

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/powerline/internal/logger"
)

// Factory builds a detector bound to env.
type Factory func(env Env) Detector

// ErrDetectorNotFound is returned when a requested detector is not registered.
type ErrDetectorNotFound struct {
	Name string
}

func (e ErrDetectorNotFound) Error() string {
	return fmt.Sprintf("detector '%s' not found in registry\nHint: run 'powerline segments' to list available detectors", e.Name)
}

// ErrDuplicateDetector is returned when a prompt layout names a detector twice.
type ErrDuplicateDetector struct {
	Name string
}

func (e ErrDuplicateDetector) Error() string {
	return fmt.Sprintf("detector '%s' listed more than once\nHint: each detector contributes at most one segment", e.Name)
}

// Registry maps detector names to factories. The order detectors run in is
// never taken from the registry; it is the order passed to Build.
type Registry struct {
	mu           sync.RWMutex
	factories    map[string]Factory
	descriptions map[string]string
	logger       *logger.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		factories:    make(map[string]Factory),
		descriptions: make(map[string]string),
		logger:       log,
	}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if f == nil {
		return fmt.Errorf("detector '%s' factory is nil", name)
	}
	if err := (Metadata{Name: name}).Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("detector '%s' already registered", name)
	}

	r.factories[name] = f
	r.descriptions[name] = f(Env{}.WithDefaults()).Metadata().Description
	r.logger.With("detector", name).Debug("detector registered")
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names lists registered detectors sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description a detector reports in its metadata.
func (r *Registry) Describe(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptions[name]
	return desc, ok
}

// Build instantiates the named detectors in exactly the given order.
func (r *Registry) Build(names []string, env Env) ([]Detector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	env = env.WithDefaults()
	seen := make(map[string]struct{}, len(names))
	detectors := make([]Detector, 0, len(names))

	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, ErrDetectorNotFound{Name: name}
		}
		if _, dup := seen[name]; dup {
			return nil, ErrDuplicateDetector{Name: name}
		}
		seen[name] = struct{}{}
		detectors = append(detectors, factory(env))
	}

	return detectors, nil
}
