// Package pattern builds node-pattern fragments such as
//
//	(person:Person:Staff { name: $name, active: $active })
//
// Condition values never appear in the text. Each fragment registers them in
// its own params.Container and returns them next to the query in a
// QueryObject. Two render modes exist:
//
//   - expanded (default): one parameter per property, rendered inline as
//     "{ key: $ref, ... }" in insertion order;
//   - condensed: the whole condition map as a single parameter named
//     "conditions", rendered as "$conditions".
//
// A fragment joins a shared namespace through UseParameterBag; rendering
// always reads the current resolved names, so text and params stay in step
// after a merge.
package pattern
