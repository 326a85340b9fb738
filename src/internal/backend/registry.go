package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DetectOptions tunes a detection probe.
type DetectOptions struct {
	// Override is an explicit executable path from settings. When set
	// it is probed first and, if present, wins without further search.
	Override string
}

// Variant is one backend family: it can probe the host for its tool,
// install the tool, and construct a Provider over a detected
// installation. Implementations register themselves in init().
type Variant interface {
	// Info returns the static description of this variant.
	Info() Info

	// Detect probes the host: override path, well-known directories,
	// then PATH. The match is not validated beyond executable name.
	Detect(ctx context.Context, opts DetectOptions) (Outcome, error)

	// Bootstrap installs the backend tool itself via its official
	// mechanism, streaming progress. Re-invoking when the tool is
	// already present follows the wrapped installer's own contract.
	Bootstrap(ctx context.Context, onProgress func(InstallProgress)) error

	// New constructs a Provider over a detected installation.
	New(env Environment) (Provider, error)
}

// Registry holds all registered backend variants.
type Registry struct {
	variants map[Kind]Variant
	mu       sync.RWMutex
}

// Global registry instance
var globalRegistry = &Registry{
	variants: make(map[Kind]Variant),
}

// NewRegistry creates an empty variant registry.
func NewRegistry() *Registry {
	return &Registry{
		variants: make(map[Kind]Variant),
	}
}

// Register adds a backend variant to the registry.
func (r *Registry) Register(v Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := v.Info().Kind
	if _, exists := r.variants[kind]; exists {
		return fmt.Errorf("backend %q is already registered", kind)
	}

	r.variants[kind] = v
	return nil
}

// Get retrieves a backend variant by kind.
func (r *Registry) Get(kind Kind) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.variants[kind]
	if !exists {
		return nil, fmt.Errorf("backend %q is not registered", kind)
	}

	return v, nil
}

// Has checks if a backend variant is registered.
func (r *Registry) Has(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.variants[kind]
	return exists
}

// Kinds returns all registered kinds in stable order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.variants))
	for kind := range r.variants {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// All returns all registered variants in stable kind order.
func (r *Registry) All() []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.variants))
	for kind := range r.variants {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	variants := make([]Variant, 0, len(kinds))
	for _, kind := range kinds {
		variants = append(variants, r.variants[kind])
	}
	return variants
}

// Global registry access functions

// Register adds a variant to the global registry.
func Register(v Variant) error {
	return globalRegistry.Register(v)
}

// Get retrieves a variant from the global registry.
func Get(kind Kind) (Variant, error) {
	return globalRegistry.Get(kind)
}

// Has checks if a variant exists in the global registry.
func Has(kind Kind) bool {
	return globalRegistry.Has(kind)
}

// Kinds returns all registered kinds from the global registry.
func Kinds() []Kind {
	return globalRegistry.Kinds()
}

// All returns all variants from the global registry.
func All() []Variant {
	return globalRegistry.All()
}
