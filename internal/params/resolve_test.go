package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveName(t *testing.T) {
	testCases := []struct {
		name     string
		existing map[string]struct{}
		base     string
		want     string
	}{
		{
			name:     "free base name",
			existing: map[string]struct{}{},
			base:     "name",
			want:     "name",
		},
		{
			name:     "nil set",
			existing: nil,
			base:     "name",
			want:     "name",
		},
		{
			name:     "first collision starts at 2",
			existing: map[string]struct{}{"name": {}},
			base:     "name",
			want:     "name2",
		},
		{
			name:     "skips taken suffixes",
			existing: map[string]struct{}{"name": {}, "name2": {}, "name3": {}},
			base:     "name",
			want:     "name4",
		},
		{
			name:     "gap is reused",
			existing: map[string]struct{}{"name": {}, "name3": {}},
			base:     "name",
			want:     "name2",
		},
		{
			name:     "suffixed name taken by another base",
			existing: map[string]struct{}{"name2": {}},
			base:     "name",
			want:     "name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveName(tc.existing, tc.base))
		})
	}
}

func TestResolveName_DoesNotMutate(t *testing.T) {
	existing := map[string]int{"name": 1}

	ResolveName(existing, "name")
	ResolveName(existing, "other")

	assert.Equal(t, map[string]int{"name": 1}, existing)
}
