package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cypherfrag/internal/params"
)

func steve() Conditions {
	return NewConditions(P("name", "Steve"), P("active", true))
}

func TestNodePattern_Build(t *testing.T) {
	expandedParams := map[string]any{"name": "Steve", "active": true}

	testCases := []struct {
		name       string
		node       *NodePattern
		wantQuery  string
		wantParams map[string]any
	}{
		{
			name:       "variable name",
			node:       Named("person"),
			wantQuery:  "(person)",
			wantParams: map[string]any{},
		},
		{
			name:       "single label",
			node:       NamedWithLabels("person", "Person"),
			wantQuery:  "(person:Person)",
			wantParams: map[string]any{},
		},
		{
			name:       "multiple labels",
			node:       NamedWithLabels("person", "Person", "Staff", "Female"),
			wantQuery:  "(person:Person:Staff:Female)",
			wantParams: map[string]any{},
		},
		{
			name:       "just labels",
			node:       WithLabels("Person", "Staff", "Female"),
			wantQuery:  "(:Person:Staff:Female)",
			wantParams: map[string]any{},
		},
		{
			name:       "just conditions",
			node:       WithConditions(steve()),
			wantQuery:  "({ name: $name, active: $active })",
			wantParams: expandedParams,
		},
		{
			name:       "name and conditions",
			node:       NamedWithConditions("person", steve()),
			wantQuery:  "(person { name: $name, active: $active })",
			wantParams: expandedParams,
		},
		{
			name:       "labels and conditions",
			node:       LabelsWithConditions([]string{"Person", "Staff"}, steve()),
			wantQuery:  "(:Person:Staff { name: $name, active: $active })",
			wantParams: expandedParams,
		},
		{
			name:       "name, empty labels and conditions",
			node:       New(Options{Name: "person", Labels: []string{}, Conditions: steve()}),
			wantQuery:  "(person { name: $name, active: $active })",
			wantParams: expandedParams,
		},
		{
			name: "complete pattern",
			node: New(Options{
				Name:       "person",
				Labels:     []string{"Person", "Staff", "Female"},
				Conditions: steve(),
			}),
			wantQuery:  "(person:Person:Staff:Female { name: $name, active: $active })",
			wantParams: expandedParams,
		},
		{
			name:       "empty pattern",
			node:       New(Options{}),
			wantQuery:  "()",
			wantParams: map[string]any{},
		},
		{
			name:       "duplicate labels dropped",
			node:       WithLabels("Person", "Staff", "Person"),
			wantQuery:  "(:Person:Staff)",
			wantParams: map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			obj := tc.node.BuildQueryObject()
			assert.Equal(t, tc.wantQuery, obj.Query)
			assert.Equal(t, tc.wantParams, obj.Params)
		})
	}
}

func TestNodePattern_PropertyOrderFollowsInsertion(t *testing.T) {
	node := NamedWithConditions("person", NewConditions(P("active", true), P("name", "Steve")))

	obj := node.BuildQueryObject()
	assert.Equal(t, "(person { active: $active, name: $name })", obj.Query)
}

func TestNodePattern_CondensedConditions(t *testing.T) {
	node := New(Options{Name: "person", Labels: []string{}, Conditions: steve()})
	node.SetExpandedConditions(false)

	obj := node.BuildQueryObject()
	assert.Equal(t, "(person $conditions)", obj.Query)
	require.Len(t, obj.Params, 1)
	assert.Equal(t, map[string]any{"name": "Steve", "active": true}, obj.Params["conditions"])
}

func TestNodePattern_CondensedWithoutHead(t *testing.T) {
	node := WithConditions(steve()).SetExpandedConditions(false)

	assert.Equal(t, "($conditions)", node.BuildQueryObject().Query)
}

func TestNodePattern_ToggleConditions(t *testing.T) {
	node := New(Options{
		Name:       "person",
		Labels:     []string{"Person", "Staff", "Female"},
		Conditions: steve(),
	})

	obj := node.BuildQueryObject()
	assert.Equal(t, "(person:Person:Staff:Female { name: $name, active: $active })", obj.Query)
	assert.Equal(t, map[string]any{"name": "Steve", "active": true}, obj.Params)

	node.SetExpandedConditions(false)
	obj = node.BuildQueryObject()
	assert.Equal(t, "(person:Person:Staff:Female $conditions)", obj.Query)
	assert.Equal(t, map[string]any{
		"conditions": map[string]any{"name": "Steve", "active": true},
	}, obj.Params)

	node.SetExpandedConditions(true)
	obj = node.BuildQueryObject()
	assert.Equal(t, "(person:Person:Staff:Female { name: $name, active: $active })", obj.Query)
	assert.Equal(t, map[string]any{"name": "Steve", "active": true}, obj.Params)

	// The underlying conditions never change.
	assert.Equal(t, []string{"name", "active"}, node.Conditions().Keys())
}

func TestNodePattern_SetExpandedConditions_SameModeIsNoop(t *testing.T) {
	node := NamedWithConditions("person", steve())
	before := node.Container().OwnParams()

	node.SetExpandedConditions(true)

	assert.True(t, node.ExpandedConditions())
	assert.Equal(t, before, node.Container().OwnParams())
}

func TestNodePattern_Idempotent(t *testing.T) {
	for _, expanded := range []bool{true, false} {
		node := NamedWithConditions("person", steve()).SetExpandedConditions(expanded)

		first := node.BuildQueryObject()
		second := node.BuildQueryObject()

		assert.Equal(t, first, second)
		assert.Len(t, node.Container().OwnParams(), len(second.Params))
	}
}

func TestNodePattern_ExpandedRegistersOneParamPerKey(t *testing.T) {
	node := NamedWithConditions("person", NewConditions(P("a", 1), P("b", 2), P("c", 3)))

	own := node.Container().OwnParams()
	require.Len(t, own, 3)
	for i, key := range []string{"a", "b", "c"} {
		assert.Equal(t, key, own[i].BaseName())
		assert.Equal(t, i+1, own[i].Value())
	}
}

func TestNodePattern_SharedBagRenamesReferences(t *testing.T) {
	shared := params.NewBag()

	first := NamedWithConditions("a", NewConditions(P("name", "Steve")))
	second := NamedWithConditions("b", NewConditions(P("name", "Bob")))
	require.NoError(t, first.UseParameterBag(shared))
	require.NoError(t, second.UseParameterBag(shared))

	assert.Equal(t, "(a { name: $name })", first.BuildQueryObject().Query)
	obj := second.BuildQueryObject()
	assert.Equal(t, "(b { name: $name2 })", obj.Query)
	assert.Equal(t, map[string]any{"name": "Steve", "name2": "Bob"}, obj.Params)
	assert.Same(t, shared, second.ParameterBag())
}

func TestNodePattern_ToggleInsideSharedBag(t *testing.T) {
	shared := params.NewBag()
	shared.AddParam("other fragment", "conditions")

	node := NamedWithConditions("person", steve())
	require.NoError(t, node.UseParameterBag(shared))

	node.SetExpandedConditions(false)
	obj := node.BuildQueryObject()

	assert.Equal(t, "(person $conditions2)", obj.Query)
	assert.Equal(t, map[string]any{
		"conditions":  "other fragment",
		"conditions2": map[string]any{"name": "Steve", "active": true},
	}, obj.Params)
}

func TestNodePattern_UseParameterBag_Nil(t *testing.T) {
	node := NamedWithConditions("person", steve())

	err := node.UseParameterBag(nil)
	require.Error(t, err)
	assert.True(t, params.IsInvalidBag(err))
}

func TestNodePattern_ConditionsAreCopied(t *testing.T) {
	conds := steve()
	node := NamedWithConditions("person", conds)

	conds.Set("extra", 1)

	assert.Equal(t, "(person { name: $name, active: $active })", node.BuildQueryObject().Query)
}

func TestNodePattern_MergedBagFollowsFragment(t *testing.T) {
	node := NamedWithConditions("person", NewConditions(P("name", "Steve")))

	shared := params.NewBag()
	shared.AddParam("other", "name")
	require.NoError(t, shared.Merge(node.ParameterBag()))

	assert.Same(t, shared, node.ParameterBag())
	assert.Equal(t, QueryObject{
		Query:  "(person { name: $name2 })",
		Params: map[string]any{"name": "other", "name2": "Steve"},
	}, node.BuildQueryObject())

	node.SetExpandedConditions(false)
	assert.Equal(t, QueryObject{
		Query: "(person $conditions)",
		Params: map[string]any{
			"name":       "other",
			"conditions": map[string]any{"name": "Steve"},
		},
	}, node.BuildQueryObject())
}

func TestNodePattern_ParamsSnapshotNotAliased(t *testing.T) {
	scores := []int{1}
	node := NamedWithConditions("p", NewConditions(P("scores", scores)))

	snapshot := node.BuildQueryObject().Params
	snapshot["scores"].([]int)[0] = 99
	scores[0] = 42

	assert.Equal(t, map[string]any{"scores": []int{1}}, node.BuildQueryObject().Params)

	node.SetExpandedConditions(false)
	condensed := node.BuildQueryObject().Params
	condensed["conditions"].(map[string]any)["scores"].([]int)[0] = 7
	assert.Equal(t, map[string]any{
		"conditions": map[string]any{"scores": []int{1}},
	}, node.BuildQueryObject().Params)
}

func TestNodePattern_Accessors(t *testing.T) {
	node := New(Options{Name: "p", Labels: []string{"A", "B"}, Conditions: steve()})

	assert.Equal(t, "p", node.Variable())
	assert.Equal(t, []string{"A", "B"}, node.Labels())
	assert.Equal(t, 2, node.Conditions().Len())
	assert.True(t, node.ExpandedConditions())
}
