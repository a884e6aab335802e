// Package harness runs fragment scenarios described in YAML.
//
// A scenario lists one or more fragments by their constructor arguments,
// optionally wraps them in a clause, and states the query text and
// parameters the rendering must produce:
//
//	name: person_with_labels
//	description: "Named pattern with two labels and two conditions"
//	fragments:
//	  - args: [person, [Person, Staff], {name: Steve, active: true}]
//	expect:
//	  query: "(person:Person:Staff { name: $name, active: $active })"
//	  params: {name: Steve, active: true}
//
// Several fragments share one parameter namespace through a clause:
//
//	fragments:
//	  - args: [a, {name: Steve}]
//	  - args: [b, {name: Dave}]
//	clause: MATCH
//	return: [a, b]
//	expect:
//	  query: "MATCH (a { name: $name }), (b { name: $name2 })\nRETURN a, b"
//	  params: {name: Steve, name2: Dave}
//
// A scenario may instead expect an error code, e.g.
// INVALID_ARGUMENT_SHAPE, for arguments no constructor accepts.
//
// Parameter values are compared through canonical JSON, so 1 and 1.0 are
// the same number and map order is irrelevant. RunWithGolden additionally
// snapshots the canonical rendering under testdata/golden.
package harness
