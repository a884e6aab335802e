package params

// Parameter binds a value to a name inside a Bag.
//
// BaseName is what the caller asked for; Name is what the owning bag
// assigned. Only the bag changes Name, and only while re-homing the
// parameter into another namespace.
type Parameter struct {
	baseName string
	name     string
	value    any
}

// BaseName returns the name requested when the parameter was added.
func (p *Parameter) BaseName() string {
	return p.baseName
}

// Name returns the resolved name, unique within the owning bag.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns a copy of the bound value.
func (p *Parameter) Value() any {
	return CloneValue(p.value)
}

// Ref returns the reference used in query text, e.g. "$name2".
func (p *Parameter) Ref() string {
	return "$" + p.name
}

func (p *Parameter) String() string {
	return p.Ref()
}
