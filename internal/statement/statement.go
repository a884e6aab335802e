package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/cypherfrag/internal/params"
	"github.com/roach88/cypherfrag/internal/pattern"
)

var (
	// ErrEmptyStatement is returned by Build when no clause was added.
	ErrEmptyStatement = errors.New("statement has no clauses")

	// ErrNilClause is returned by Build when a nil clause, typed or not,
	// was added.
	ErrNilClause = errors.New("nil clause")
)

// Statement is an ordered list of clauses over one shared parameter bag.
//
// Builder methods return the statement for chaining. The first error
// encountered while adding clauses is kept and returned by Build.
type Statement struct {
	bag     *params.Bag
	clauses []Clause
	err     error
}

// New creates an empty statement with its own bag.
func New() *Statement {
	return &Statement{bag: params.NewBag()}
}

// ParameterBag returns the shared bag every added fragment registers into.
func (s *Statement) ParameterBag() *params.Bag {
	return s.bag
}

// Clauses returns the clauses added so far.
func (s *Statement) Clauses() []Clause {
	return append([]Clause(nil), s.clauses...)
}

// Match adds a MATCH clause.
func (s *Statement) Match(patterns ...*pattern.NodePattern) *Statement {
	return s.Add(Match{Patterns: patterns})
}

// OptionalMatch adds an OPTIONAL MATCH clause.
func (s *Statement) OptionalMatch(patterns ...*pattern.NodePattern) *Statement {
	return s.Add(Match{Patterns: patterns, Optional: true})
}

// Create adds a CREATE clause.
func (s *Statement) Create(patterns ...*pattern.NodePattern) *Statement {
	return s.Add(Create{Patterns: patterns})
}

// Merge adds a MERGE clause.
func (s *Statement) Merge(p *pattern.NodePattern) *Statement {
	return s.Add(Merge{Pattern: p})
}

// Return adds a RETURN clause.
func (s *Statement) Return(items ...string) *Statement {
	return s.Add(Return{Items: items})
}

// ReturnDistinct adds a RETURN DISTINCT clause.
func (s *Statement) ReturnDistinct(items ...string) *Statement {
	return s.Add(Return{Items: items, Distinct: true})
}

// Add appends c and moves the fragments it renders into the shared bag.
func (s *Statement) Add(c Clause) *Statement {
	if s.err != nil {
		return s
	}
	if isNilClause(c) {
		s.err = fmt.Errorf("clause %d: %w", len(s.clauses), ErrNilClause)
		return s
	}

	for i, p := range patternsOf(c) {
		if p == nil {
			s.err = fmt.Errorf("clause %d: pattern %d is nil", len(s.clauses), i)
			return s
		}
		if err := p.UseParameterBag(s.bag); err != nil {
			s.err = fmt.Errorf("clause %d: pattern %d: %w", len(s.clauses), i, err)
			return s
		}
	}
	s.clauses = append(s.clauses, c)
	return s
}

// Build renders every clause, one per line, and returns the shared bag's
// parameters alongside the text.
func (s *Statement) Build() (pattern.QueryObject, error) {
	if s.err != nil {
		return pattern.QueryObject{}, s.err
	}
	if len(s.clauses) == 0 {
		return pattern.QueryObject{}, ErrEmptyStatement
	}

	lines := make([]string, 0, len(s.clauses))
	for i, c := range s.clauses {
		line, err := compileClause(c)
		if err != nil {
			return pattern.QueryObject{}, fmt.Errorf("compile clause %d: %w", i, err)
		}
		lines = append(lines, line)
	}

	return pattern.QueryObject{
		Query:  strings.Join(lines, "\n"),
		Params: s.bag.Params(),
	}, nil
}

// compileClause renders one clause.
func compileClause(c Clause) (string, error) {
	switch clause := c.(type) {
	case Match:
		return compileMatch(clause)
	case *Match:
		return compileMatch(*clause)
	case Create:
		return compilePatterns("CREATE", clause.Patterns)
	case *Create:
		return compilePatterns("CREATE", clause.Patterns)
	case Merge:
		return compilePatterns("MERGE", []*pattern.NodePattern{clause.Pattern})
	case *Merge:
		return compilePatterns("MERGE", []*pattern.NodePattern{clause.Pattern})
	case Return:
		return compileReturn(clause)
	case *Return:
		return compileReturn(*clause)
	default:
		return "", fmt.Errorf("unsupported clause type: %T", c)
	}
}

func compileMatch(m Match) (string, error) {
	keyword := "MATCH"
	if m.Optional {
		keyword = "OPTIONAL MATCH"
	}
	return compilePatterns(keyword, m.Patterns)
}

// compilePatterns renders "KEYWORD p1, p2, ...".
func compilePatterns(keyword string, patterns []*pattern.NodePattern) (string, error) {
	if len(patterns) == 0 {
		return "", fmt.Errorf("%s requires at least one pattern", keyword)
	}

	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		parts = append(parts, p.BuildQueryObject().Query)
	}
	return keyword + " " + strings.Join(parts, ", "), nil
}

func compileReturn(r Return) (string, error) {
	if len(r.Items) == 0 {
		return "", fmt.Errorf("RETURN requires at least one item")
	}
	keyword := "RETURN "
	if r.Distinct {
		keyword = "RETURN DISTINCT "
	}
	return keyword + strings.Join(r.Items, ", "), nil
}
