package pattern

import (
	"slices"
	"strings"

	"github.com/roach88/cypherfrag/internal/params"
)

// conditionsBaseName is the base name of the single parameter used in
// condensed mode.
const conditionsBaseName = "conditions"

// Options lists the optional parts of a node pattern.
type Options struct {
	// Name is the variable bound to the node. Empty means anonymous.
	Name string

	// Labels are rendered in order; duplicates are dropped.
	Labels []string

	// Conditions are the property conditions on the node.
	Conditions Conditions
}

// NodePattern renders one node pattern fragment.
type NodePattern struct {
	variable   string
	labels     []string
	conditions Conditions
	expanded   bool
	params     *params.Container

	// Registrations for the current render mode. propertyParams follows
	// conditions.Keys() in expanded mode; conditionsParam is set in
	// condensed mode.
	propertyParams  []*params.Parameter
	conditionsParam *params.Parameter
}

// New creates a node pattern from opts. Conditions are rendered expanded
// until SetExpandedConditions(false) is called.
func New(opts Options) *NodePattern {
	n := &NodePattern{
		variable:   opts.Name,
		labels:     uniqueLabels(opts.Labels),
		conditions: opts.Conditions.Clone(),
		expanded:   true,
		params:     params.NewContainer(),
	}
	n.registerConditions()
	return n
}

// Named creates "(name)".
func Named(name string) *NodePattern {
	return New(Options{Name: name})
}

// NamedWithLabels creates "(name:L1:L2)". A single label covers the
// (name, label) shape.
func NamedWithLabels(name string, labels ...string) *NodePattern {
	return New(Options{Name: name, Labels: labels})
}

// WithLabels creates an anonymous "(:L1:L2)".
func WithLabels(labels ...string) *NodePattern {
	return New(Options{Labels: labels})
}

// WithConditions creates an anonymous, unlabelled "({ ... })".
func WithConditions(conditions Conditions) *NodePattern {
	return New(Options{Conditions: conditions})
}

// NamedWithConditions creates "(name { ... })".
func NamedWithConditions(name string, conditions Conditions) *NodePattern {
	return New(Options{Name: name, Conditions: conditions})
}

// LabelsWithConditions creates "(:L1:L2 { ... })".
func LabelsWithConditions(labels []string, conditions Conditions) *NodePattern {
	return New(Options{Labels: labels, Conditions: conditions})
}

// SetExpandedConditions switches between expanded and condensed rendering.
//
// The container only ever holds the current mode's parameters: switching
// releases the old registrations before adding the new ones.
func (n *NodePattern) SetExpandedConditions(expanded bool) *NodePattern {
	if n.expanded == expanded {
		return n
	}
	n.expanded = expanded
	n.registerConditions()
	return n
}

// ExpandedConditions reports the current render mode.
func (n *NodePattern) ExpandedConditions() bool {
	return n.expanded
}

// Variable returns the variable name, empty when anonymous.
func (n *NodePattern) Variable() string {
	return n.variable
}

// Labels returns the labels in render order.
func (n *NodePattern) Labels() []string {
	return slices.Clone(n.labels)
}

// Conditions returns a copy of the property conditions.
func (n *NodePattern) Conditions() Conditions {
	return n.conditions.Clone()
}

// Container returns the fragment's parameter container.
func (n *NodePattern) Container() *params.Container {
	return n.params
}

// ParameterBag returns the bag the fragment currently registers into.
func (n *NodePattern) ParameterBag() *params.Bag {
	return n.params.ParameterBag()
}

// UseParameterBag moves the fragment's parameters into bag.
func (n *NodePattern) UseParameterBag(bag *params.Bag) error {
	return n.params.UseParameterBag(bag)
}

// BuildQueryObject renders the fragment.
//
// Params is the attached bag's full snapshot. The text is derived from the
// current resolved names on every call, so the result follows merges and
// mode switches.
func (n *NodePattern) BuildQueryObject() QueryObject {
	var head strings.Builder
	head.WriteString(n.variable)
	for _, label := range n.labels {
		head.WriteByte(':')
		head.WriteString(label)
	}

	parts := make([]string, 0, 2)
	if head.Len() > 0 {
		parts = append(parts, head.String())
	}
	if cond := n.renderConditions(); cond != "" {
		parts = append(parts, cond)
	}

	return QueryObject{
		Query:  "(" + strings.Join(parts, " ") + ")",
		Params: n.params.Params(),
	}
}

func (n *NodePattern) renderConditions() string {
	if n.conditions.Len() == 0 {
		return ""
	}
	if !n.expanded {
		return n.conditionsParam.Ref()
	}

	pairs := make([]string, 0, len(n.propertyParams))
	for i, key := range n.conditions.keys {
		pairs = append(pairs, key+": "+n.propertyParams[i].Ref())
	}
	return "{ " + strings.Join(pairs, ", ") + " }"
}

// registerConditions replaces the container registrations with those the
// current mode needs.
func (n *NodePattern) registerConditions() {
	for _, p := range n.propertyParams {
		n.params.RemoveParam(p)
	}
	n.propertyParams = nil
	if n.conditionsParam != nil {
		n.params.RemoveParam(n.conditionsParam)
		n.conditionsParam = nil
	}

	if n.conditions.Len() == 0 {
		return
	}
	if !n.expanded {
		n.conditionsParam = n.params.AddParam(n.conditions.Map(), conditionsBaseName)
		return
	}
	for _, key := range n.conditions.keys {
		n.propertyParams = append(n.propertyParams, n.params.AddParam(n.conditions.values[key], key))
	}
}

func uniqueLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if !slices.Contains(out, label) {
			out = append(out, label)
		}
	}
	return out
}
