package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShapes map[string]bool

func (f fakeShapes) exists(id string) bool { return f[id] }

func newState() (*State, fakeShapes, *[]ChangedEvent) {
	shapes := fakeShapes{"rect1": true, "rect2": true, "rect3": true}
	s := New(shapes.exists)
	var events []ChangedEvent
	s.Subscribe(func(ev ChangedEvent) { events = append(events, ev) })
	return s, shapes, &events
}

func TestSelectIsExclusive(t *testing.T) {
	s, _, events := newState()

	require.NoError(t, s.Select("rect1"))
	require.NoError(t, s.Select("rect2"))

	assert.Equal(t, []string{"rect2"}, s.IDs())
	assert.False(t, s.IsSelected("rect1"))
	assert.True(t, s.IsSelected("rect2"))
	assert.Equal(t, Single, s.State())

	require.Len(t, *events, 2)
	assert.Equal(t, ChangedEvent{Added: []string{"rect2"}, Removed: []string{"rect1"}, Selected: []string{"rect2"}}, (*events)[1])
}

func TestSelectSameIDIsIdempotent(t *testing.T) {
	s, _, events := newState()

	require.NoError(t, s.Select("rect1"))
	require.NoError(t, s.Select("rect1"))

	assert.Equal(t, []string{"rect1"}, s.IDs())
	assert.Len(t, *events, 1)
}

func TestSelectUnknownLeavesSelection(t *testing.T) {
	s, _, events := newState()
	require.NoError(t, s.Select("rect1"))

	err := s.Select("ghost")
	require.ErrorIs(t, err, ErrUnknownShape)
	assert.Equal(t, []string{"rect1"}, s.IDs())
	assert.Len(t, *events, 1)
}

func TestClear(t *testing.T) {
	s, _, events := newState()

	s.Clear()
	assert.Empty(t, *events, "clearing an empty selection is silent")

	require.NoError(t, s.Select("rect3"))
	s.Clear()
	assert.Equal(t, Empty, s.State())
	assert.Empty(t, s.IDs())
	_, ok := s.Current()
	assert.False(t, ok)
	require.Len(t, *events, 2)
	assert.Equal(t, []string{"rect3"}, (*events)[1].Removed)
}

func TestReplace(t *testing.T) {
	s, _, _ := newState()

	require.NoError(t, s.Replace([]string{"rect1", "rect3", "rect1"}))
	assert.Equal(t, []string{"rect1", "rect3"}, s.IDs())
	assert.Equal(t, Multi, s.State())

	err := s.Replace([]string{"rect2", "ghost"})
	require.ErrorIs(t, err, ErrUnknownShape)
	assert.Equal(t, []string{"rect1", "rect3"}, s.IDs())
}

func TestPruneDropsRemovedShapes(t *testing.T) {
	s, shapes, events := newState()
	require.NoError(t, s.Select("rect2"))

	assert.Empty(t, s.Prune())

	delete(shapes, "rect2")
	assert.Equal(t, []string{"rect2"}, s.Prune())
	assert.Equal(t, Empty, s.State())
	assert.Equal(t, []string{"rect2"}, (*events)[len(*events)-1].Removed)
}

func TestAtMostOneAfterSelects(t *testing.T) {
	s, _, _ := newState()
	seq := []string{"rect1", "rect2", "", "rect3", "rect3", "", "rect1"}

	for _, id := range seq {
		if id == "" {
			s.Clear()
		} else {
			require.NoError(t, s.Select(id))
		}
		require.LessOrEqual(t, s.Len(), 1)
		if cur, ok := s.Current(); ok {
			assert.Equal(t, id, cur)
		}
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "multi", Multi.String())
}
