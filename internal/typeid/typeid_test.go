package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.jetify.com/typeid/v2"
)

func TestPrefixes(t *testing.T) {
	cases := map[string]string{
		PrefixShape:   NewShapeID(),
		PrefixOp:      NewOpID(),
		PrefixGesture: NewGestureID(),
	}
	for prefix, id := range cases {
		parsed, err := typeid.Parse(id)
		require.NoError(t, err, id)
		assert.Equal(t, prefix, parsed.Prefix())
		assert.True(t, strings.HasPrefix(id, prefix+"_"), id)
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewGestureID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
