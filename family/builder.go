package family

// Builder collects references and variants before freezing them into a
// [Family]. References are added or overwritten by name; variants keep their
// registration order. A Builder is not safe for concurrent use and is meant
// to live only inside a family constructor.
type Builder struct {
	name     string
	start    float64
	end      float64
	refs     []Impl
	variants []Impl
}

// NewBuilder starts a family with the given name and default range.
func NewBuilder(name string, start, end float64) *Builder {
	return &Builder{name: name, start: start, end: end}
}

// Reference adds a reference implementation, replacing any earlier reference
// with the same name in place.
func (b *Builder) Reference(name string, fn Func) *Builder {
	for i := range b.refs {
		if b.refs[i].Name == name {
			b.refs[i].Fn = fn
			return b
		}
	}
	b.refs = append(b.refs, Impl{Name: name, Fn: fn})
	return b
}

// Variant appends an approximation variant.
func (b *Builder) Variant(name string, fn Func) *Builder {
	b.variants = append(b.variants, Impl{Name: name, Fn: fn})
	return b
}

// Build freezes the collected implementations into a Family.
func (b *Builder) Build() (*Family, error) {
	return New(b.name, b.start, b.end, b.refs, b.variants)
}
