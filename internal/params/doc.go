// Package params owns the parameter namespace of a query fragment.
//
// A Bag is the single authority for a namespace: it hands out collision-free
// resolved names ("name", "name2", "name3", ...) and stores every Parameter
// in insertion order. A Container is the per-fragment view onto a bag. It
// remembers which parameters it added itself so that it can move them into
// another bag when several fragments are assembled into one statement.
//
// Values are never interpolated into query text. Fragments render Ref()
// ("$name") and ship Params() alongside the text.
//
// Nothing in this package blocks or performs I/O. Bags are not safe for
// concurrent mutation; a statement is assembled by one goroutine.
package params
