// Package family defines function families: a named mathematical function
// with one or more trusted reference implementations, a default sampling
// range and an ordered set of approximation variants.
//
// A Family is assembled once, usually in a package constructor such as
// sine.New, and is read-only afterwards. Every accessor returns a copy, so
// evaluators and presentation code can never mutate a registered family.
package family

import (
	"errors"
	"fmt"
	"sort"
)

// Func is a scalar transform double -> double. Reference implementations and
// approximation variants share this signature.
type Func func(x float64) float64

// Impl is a named implementation of a family's function. It is used both for
// reference implementations and for approximation variants.
type Impl struct {
	// Name is a human-readable, family-unique identifier
	// (e.g., "sin", "CORDIC sine approximation").
	Name string

	// Fn evaluates the implementation. It must be pure.
	Fn Func
}

var (
	// ErrInvalidImpl indicates an implementation with an empty name or nil function.
	ErrInvalidImpl = errors.New("family: invalid implementation")

	// ErrDuplicateName indicates two variants registered under the same name.
	ErrDuplicateName = errors.New("family: duplicate name")

	// ErrNoReference indicates a family without any reference implementation.
	ErrNoReference = errors.New("family: no reference implementation")

	// ErrUnknownVariant indicates a variant name not registered in the family.
	ErrUnknownVariant = errors.New("family: unknown variant")

	// ErrUnknownReference indicates a reference name not registered in the family.
	ErrUnknownReference = errors.New("family: unknown reference")
)

// Family is an immutable registry of references and variants for one
// mathematical function.
type Family struct {
	name     string
	start    float64
	end      float64
	refs     map[string]Impl
	refOrder []string
	variants []Impl
}

// New returns a fully-formed family. References must have unique names;
// variants must have unique names and keep their order. Use [Builder] when
// reference overwrite-by-name semantics are wanted.
func New(name string, start, end float64, refs, variants []Impl) (*Family, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty family name", ErrInvalidImpl)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReference)
	}

	f := &Family{
		name:     name,
		start:    start,
		end:      end,
		refs:     make(map[string]Impl, len(refs)),
		refOrder: make([]string, 0, len(refs)),
		variants: make([]Impl, 0, len(variants)),
	}

	for _, r := range refs {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("%s reference: %w", name, err)
		}
		if _, ok := f.refs[r.Name]; ok {
			return nil, fmt.Errorf("%s reference %q: %w", name, r.Name, ErrDuplicateName)
		}
		f.refs[r.Name] = r
		f.refOrder = append(f.refOrder, r.Name)
	}

	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("%s variant: %w", name, err)
		}
		if _, ok := seen[v.Name]; ok {
			return nil, fmt.Errorf("%s variant %q: %w", name, v.Name, ErrDuplicateName)
		}
		seen[v.Name] = struct{}{}
		f.variants = append(f.variants, v)
	}

	return f, nil
}

// MustNew is like New but panics on error. Intended for package-level
// constructors whose inputs are compile-time constants.
func MustNew(name string, start, end float64, refs, variants []Impl) *Family {
	f, err := New(name, start, end, refs, variants)
	if err != nil {
		panic(err)
	}
	return f
}

func validate(impl Impl) error {
	if impl.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidImpl)
	}
	if impl.Fn == nil {
		return fmt.Errorf("%w: %q has nil function", ErrInvalidImpl, impl.Name)
	}
	return nil
}

// Name returns the family name (e.g., "Sin Approximations").
func (f *Family) Name() string { return f.name }

// DefaultRange returns the default sampling range [start, end).
func (f *Family) DefaultRange() (start, end float64) { return f.start, f.end }

// Variants returns a copy of the registered variants in registration order.
func (f *Family) Variants() []Impl {
	out := make([]Impl, len(f.variants))
	copy(out, f.variants)
	return out
}

// VariantNames returns the variant names in registration order.
func (f *Family) VariantNames() []string {
	names := make([]string, len(f.variants))
	for i, v := range f.variants {
		names[i] = v.Name
	}
	return names
}

// Reference returns the reference implementation registered under name.
func (f *Family) Reference(name string) (Impl, bool) {
	r, ok := f.refs[name]
	return r, ok
}

// LookupReference is like Reference but returns ErrUnknownReference when the
// name is not registered. An empty name selects the default reference.
func (f *Family) LookupReference(name string) (Impl, error) {
	if name == "" {
		return f.DefaultReference(), nil
	}
	r, ok := f.refs[name]
	if !ok {
		return Impl{}, fmt.Errorf("%s: %w %q", f.name, ErrUnknownReference, name)
	}
	return r, nil
}

// DefaultReference returns the first registered reference implementation.
func (f *Family) DefaultReference() Impl {
	return f.refs[f.refOrder[0]]
}

// ReferenceNames returns the reference names sorted alphabetically.
func (f *Family) ReferenceNames() []string {
	names := make([]string, len(f.refOrder))
	copy(names, f.refOrder)
	sort.Strings(names)
	return names
}

// Select returns the named variants in registration order. With no names it
// returns all variants.
func (f *Family) Select(names ...string) ([]Impl, error) {
	if len(names) == 0 {
		return f.Variants(), nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	out := make([]Impl, 0, len(names))
	for _, v := range f.variants {
		if want[v.Name] {
			out = append(out, v)
			delete(want, v.Name)
		}
	}

	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%s: %w %q", f.name, ErrUnknownVariant, missing)
	}

	return out, nil
}
