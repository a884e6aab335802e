// Package statement assembles node-pattern fragments into one statement that
// shares a single parameter namespace.
//
// Fragments are built independently, each with a private bag. Adding a
// fragment to a Statement re-homes its container into the statement's bag,
// which re-resolves any colliding names:
//
//	a := pattern.NamedWithConditions("a", pattern.NewConditions(pattern.P("name", "Steve")))
//	b := pattern.NamedWithConditions("b", pattern.NewConditions(pattern.P("name", "Bob")))
//
//	obj, err := statement.New().Match(a, b).Return("a", "b").Build()
//	// obj.Query:  MATCH (a { name: $name }), (b { name: $name2 })
//	//             RETURN a, b
//	// obj.Params: {name: Steve, name2: Bob}
//
// CLAUSES:
//
// Clause is a sealed interface using the marker method pattern. Only the
// types in this package implement it, so Build can switch exhaustively:
//
//	Match   MATCH / OPTIONAL MATCH p1, p2, ...
//	Create  CREATE p1, p2, ...
//	Merge   MERGE p
//	Return  RETURN [DISTINCT] item, ...
//
// A fragment belongs to one statement at a time. Adding it to a second
// statement moves its parameters there.
package statement
