package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jdcrensh/sftemplate/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by key
type Registry[K ~string, T any] interface {
	// Register adds an item to the registry
	Register(key K, item T) error

	// Get retrieves an item from the registry
	Get(key K) (T, error)

	// List returns all registered keys
	List() []K

	// Has checks if an item is registered
	Has(key K) bool

	// Count returns the number of registered items
	Count() int
}

type registry[K ~string, T any] struct {
	mu    sync.RWMutex
	items map[K]T
}

// New creates a new Registry instance
func New[K ~string, T any]() Registry[K, T] {
	return &registry[K, T]{
		items: make(map[K]T),
	}
}

// Register adds an item to the registry
func (r *registry[K, T]) Register(key K, item T) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "registry key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", key)
	}

	r.items[key] = item
	return nil
}

// Get retrieves an item from the registry
func (r *registry[K, T]) Get(key K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[key]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", key)
	}

	return item, nil
}

// List returns all registered keys in sorted order
func (r *registry[K, T]) List() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.items))
	for key := range r.items {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Has checks if an item is registered
func (r *registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[key]
	return exists
}

// Count returns the number of registered items
func (r *registry[K, T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails
// This is useful for init() functions where registration errors are programming errors
func MustRegister[K ~string, T any](reg Registry[K, T], key K, item T) {
	if err := reg.Register(key, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", key, err))
	}
}
