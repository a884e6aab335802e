package params

import (
	"log/slog"
	"slices"
)

// Bag is the parameter namespace of one query or fragment.
//
// Resolved names are unique within a bag at all times. The order in which
// parameters are added decides who keeps a contested base name: the first
// registration wins, later ones receive a numeric suffix.
type Bag struct {
	params     map[string]*Parameter
	order      []string // resolved names, insertion order
	containers []*Container
}

// NewBag creates an empty bag.
func NewBag() *Bag {
	return &Bag{params: make(map[string]*Parameter)}
}

// AddParam registers value under baseName and returns the new Parameter.
// The resolved name is baseName when free, else baseName2, baseName3, ...
// Maps, slices and arrays are copied, so later changes to value do not
// reach the bag.
func (b *Bag) AddParam(value any, baseName string) *Parameter {
	p := &Parameter{baseName: baseName, value: CloneValue(value)}
	b.register(p)
	return p
}

// Param returns the parameter registered under a resolved name.
func (b *Bag) Param(name string) (*Parameter, error) {
	p, ok := b.params[name]
	if !ok {
		return nil, NewNotFoundError(name)
	}
	return p, nil
}

// Params returns resolved name → value for every parameter in the bag.
//
// The returned map is a fresh snapshot. Nested maps, slices and arrays are
// copied too, so callers may mutate the result without touching bag state.
func (b *Bag) Params() map[string]any {
	out := make(map[string]any, len(b.params))
	for name, p := range b.params {
		out[name] = CloneValue(p.value)
	}
	return out
}

// Names returns the resolved names in insertion order.
func (b *Bag) Names() []string {
	return slices.Clone(b.order)
}

// Len returns the number of registered parameters.
func (b *Bag) Len() int {
	return len(b.order)
}

// Merge moves every parameter of other into b.
//
// Parameters are re-registered by base name in other's insertion order, so
// collisions are resolved afresh against b's namespace. other is left empty
// and b becomes the sole authority for the moved parameters. Containers
// attached to other are attached to b.
func (b *Bag) Merge(other *Bag) error {
	if other == nil {
		return NewInvalidBagError()
	}
	if other == b {
		return nil
	}

	moved := make([]*Parameter, 0, len(other.order))
	for _, name := range other.order {
		moved = append(moved, other.params[name])
	}
	other.params = make(map[string]*Parameter)
	other.order = nil

	for _, p := range moved {
		previous := p.name
		b.register(p)
		if p.name != previous {
			slog.Debug("parameter renamed during merge",
				"base_name", p.baseName,
				"from", previous,
				"to", p.name)
		}
	}

	for _, c := range other.containers {
		c.bag = b
		b.attach(c)
	}
	other.containers = nil
	return nil
}

func (b *Bag) attach(c *Container) {
	b.containers = append(b.containers, c)
}

func (b *Bag) detach(c *Container) {
	if i := slices.Index(b.containers, c); i >= 0 {
		b.containers = slices.Delete(b.containers, i, i+1)
	}
}

// register assigns p a free name in b and stores it.
func (b *Bag) register(p *Parameter) {
	p.name = ResolveName(b.params, p.baseName)
	b.params[p.name] = p
	b.order = append(b.order, p.name)
}

// release removes p from b. It returns false if p is not the parameter
// currently registered under its name.
func (b *Bag) release(p *Parameter) bool {
	current, ok := b.params[p.name]
	if !ok || current != p {
		return false
	}
	delete(b.params, p.name)
	if i := slices.Index(b.order, p.name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
	return true
}
