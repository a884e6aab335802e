package params

import (
	"log/slog"
	"slices"
)

// Container is a fragment's handle onto a parameter namespace.
//
// It delegates naming to exactly one attached Bag at a time and records the
// parameters it added itself. That record is what moves when the fragment
// joins a shared bag; it never holds values of its own.
type Container struct {
	bag *Bag
	own []*Parameter
}

// NewContainer creates a container attached to a fresh private bag.
func NewContainer() *Container {
	c := &Container{bag: NewBag()}
	c.bag.attach(c)
	return c
}

// AddParam registers value in the attached bag and records it as one of
// this container's own parameters.
func (c *Container) AddParam(value any, baseName string) *Parameter {
	p := c.bag.AddParam(value, baseName)
	c.own = append(c.own, p)
	return p
}

// RemoveParam drops one of this container's own parameters from the
// attached bag. Parameters added by someone else are left alone.
func (c *Container) RemoveParam(p *Parameter) bool {
	i := slices.Index(c.own, p)
	if i < 0 {
		return false
	}
	c.own = slices.Delete(c.own, i, i+1)
	return c.bag.release(p)
}

// Params returns the attached bag's full snapshot, including parameters
// added by other fragments that share the bag.
func (c *Container) Params() map[string]any {
	return c.bag.Params()
}

// ParameterBag returns the attached bag.
func (c *Container) ParameterBag() *Bag {
	return c.bag
}

// OwnParams returns this container's own parameters in the order they were
// added.
func (c *Container) OwnParams() []*Parameter {
	return slices.Clone(c.own)
}

// UseParameterBag attaches the container to bag.
//
// A container follows its bag through Bag.Merge, so it is always attached
// to the bag that holds its parameters.
//
// Every own parameter is released from the old bag and re-registered in bag
// by base name. Values are preserved exactly and so is the *Parameter
// identity; only the resolved name changes when bag already uses it.
func (c *Container) UseParameterBag(bag *Bag) error {
	if bag == nil {
		return NewInvalidBagError()
	}
	if bag == c.bag {
		return nil
	}

	for _, p := range c.own {
		previous := p.name
		c.bag.release(p)
		bag.register(p)
		if p.name != previous {
			slog.Debug("parameter renamed on re-home",
				"base_name", p.baseName,
				"from", previous,
				"to", p.name)
		}
	}
	c.bag.detach(c)
	bag.attach(c)
	c.bag = bag
	return nil
}
