// Package selection holds the set of selected shape ids.
//
// A click selects exactly one shape and a click on the empty surface clears
// the set. The set representation leaves room for marquee results holding
// several ids. Every id in the set refers to a shape that exists according
// to the exists function the State was built with.
package selection

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

var ErrUnknownShape = errors.New("unknown shape")

// Mode is the logical state of the selection.
type Mode int

const (
	Empty Mode = iota
	Single
	Multi
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "empty"
	}
}

// ChangedEvent is delivered to listeners after the set changes.
type ChangedEvent struct {
	Added    []string
	Removed  []string
	Selected []string
}

type Listener func(ChangedEvent)

// State is the selection set. It is not safe for concurrent use.
type State struct {
	ids       []string
	exists    func(id string) bool
	listeners []Listener
}

// New creates an empty selection. exists reports whether a shape id is
// currently present in the store.
func New(exists func(id string) bool) *State {
	return &State{exists: exists}
}

// Subscribe registers l. Listeners run synchronously inside the call that
// changed the selection, in registration order.
func (s *State) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Select replaces the selection with {id}.
func (s *State) Select(id string) error {
	if !s.exists(id) {
		return fmt.Errorf("select %q: %w", id, ErrUnknownShape)
	}
	s.set([]string{id})
	return nil
}

// Replace sets the selection to ids, dropping duplicates. Nothing changes
// if any id is unknown.
func (s *State) Replace(ids []string) error {
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if !s.exists(id) {
			return fmt.Errorf("select %q: %w", id, ErrUnknownShape)
		}
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	s.set(next)
	return nil
}

// Clear empties the selection.
func (s *State) Clear() {
	s.set(nil)
}

// Prune drops ids whose shapes no longer exist and returns them.
func (s *State) Prune() []string {
	var stale []string
	kept := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if s.exists(id) {
			kept = append(kept, id)
		} else {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		slog.Warn("pruned selection of removed shapes", "shapes", stale)
		s.set(kept)
	}
	return stale
}

func (s *State) IsSelected(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns a copy of the selected ids in selection order.
func (s *State) IDs() []string {
	return slices.Clone(s.ids)
}

func (s *State) Len() int {
	return len(s.ids)
}

// Current returns the selected id when exactly one shape is selected.
func (s *State) Current() (string, bool) {
	if len(s.ids) != 1 {
		return "", false
	}
	return s.ids[0], true
}

func (s *State) State() Mode {
	switch len(s.ids) {
	case 0:
		return Empty
	case 1:
		return Single
	default:
		return Multi
	}
}

func (s *State) set(next []string) {
	var added, removed []string
	for _, id := range next {
		if !slices.Contains(s.ids, id) {
			added = append(added, id)
		}
	}
	for _, id := range s.ids {
		if !slices.Contains(next, id) {
			removed = append(removed, id)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return
	}

	s.ids = next
	slog.Debug("selection changed", "selected", s.ids)

	ev := ChangedEvent{
		Added:    added,
		Removed:  removed,
		Selected: slices.Clone(s.ids),
	}
	for _, l := range s.listeners {
		l(ev)
	}
}
