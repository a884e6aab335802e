package statement

import "github.com/roach88/cypherfrag/internal/pattern"

// Clause is one line of a statement.
//
// This is a sealed interface - only types in this package implement it.
type Clause interface {
	clauseNode() // Marker method - seals interface to this package
}

// Match reads patterns from the graph.
//
//	MATCH (a:Person { name: $name }), (b)
type Match struct {
	Patterns []*pattern.NodePattern
	Optional bool
}

func (Match) clauseNode() {}

// Create writes patterns to the graph.
type Create struct {
	Patterns []*pattern.NodePattern
}

func (Create) clauseNode() {}

// Merge matches a pattern or creates it when absent. MERGE takes exactly
// one pattern.
type Merge struct {
	Pattern *pattern.NodePattern
}

func (Merge) clauseNode() {}

// Return projects results. Items are emitted verbatim.
type Return struct {
	Items    []string
	Distinct bool
}

func (Return) clauseNode() {}

// isNilClause reports whether c is nil or a nil pointer to a clause.
func isNilClause(c Clause) bool {
	switch clause := c.(type) {
	case nil:
		return true
	case *Match:
		return clause == nil
	case *Create:
		return clause == nil
	case *Merge:
		return clause == nil
	case *Return:
		return clause == nil
	default:
		return false
	}
}

// patternsOf lists the fragments a clause renders.
func patternsOf(c Clause) []*pattern.NodePattern {
	switch clause := c.(type) {
	case Match:
		return clause.Patterns
	case *Match:
		return clause.Patterns
	case Create:
		return clause.Patterns
	case *Create:
		return clause.Patterns
	case Merge:
		return []*pattern.NodePattern{clause.Pattern}
	case *Merge:
		return []*pattern.NodePattern{clause.Pattern}
	default:
		return nil
	}
}
