package drivers

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a driver from configuration
type Factory interface {
	CreateDriver(config map[string]any) (Driver, error)
	ValidateConfig(config map[string]any) error
}

// Registry manages driver factories
type Registry struct {
	drivers map[string]Factory
	mu      sync.RWMutex
}

// NewRegistry creates a new driver registry
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
	}
}

// Register adds a driver factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDriverRegistered, name)
	}

	r.drivers[name] = factory
	return nil
}

func (r *Registry) factory(driverName string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.drivers[driverName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driverName)
	}
	return factory, nil
}

// Create creates a driver using the specified factory
func (r *Registry) Create(driverName string, config map[string]any) (Driver, error) {
	factory, err := r.factory(driverName)
	if err != nil {
		return nil, err
	}
	return factory.CreateDriver(config)
}

// ValidateConfig validates configuration for the specified driver
func (r *Registry) ValidateConfig(driverName string, config map[string]any) error {
	factory, err := r.factory(driverName)
	if err != nil {
		return err
	}
	return factory.ValidateConfig(config)
}

// ListDrivers returns the sorted names of all registered drivers
func (r *Registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default registry instance
var defaultRegistry = NewRegistry()

// Register adds a driver factory to the default registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegister adds a driver factory to the default registry and panics on error
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register driver %s: %v", name, err))
	}
}

// Create creates a driver using the default registry
func Create(driverName string, config map[string]any) (Driver, error) {
	return defaultRegistry.Create(driverName, config)
}

// ValidateConfig validates configuration using the default registry
func ValidateConfig(driverName string, config map[string]any) error {
	return defaultRegistry.ValidateConfig(driverName, config)
}

// ListDrivers returns the names of all registered drivers in the default registry
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}
