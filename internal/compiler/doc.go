// Package compiler turns CUE pattern definitions into node patterns.
//
// Definitions live under a top-level "pattern" struct; the field label is
// the definition name:
//
//	pattern: person: {
//		variable: "person"
//		labels: ["Person", "Staff"]
//		conditions: {
//			name:   "Steve"
//			active: true
//		}
//		expanded: false // optional, defaults to true
//	}
//
// CUE preserves field declaration order, and so does the compiler:
// conditions render in the order they are written.
//
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
package compiler
