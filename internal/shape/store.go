package shape

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

var (
	ErrNotFound        = errors.New("shape not found")
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrDuplicateID     = errors.New("duplicate shape id")
)

type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one committed write. For ChangeRemoved, Shape is the
// record that was removed.
type Change struct {
	Kind  ChangeKind
	Shape Shape
}

// Store owns the canonical, ordered list of shapes. Records are replaced
// whole, never mutated in place. Store is not safe for concurrent use.
type Store struct {
	minSize  float64
	shapes   []Shape
	index    map[string]int // id -> position in shapes
	watchers []func(Change)
}

// NewStore creates a store holding seed in painter's order (back to front).
func NewStore(minSize float64, seed []Shape) (*Store, error) {
	if minSize <= 0 {
		minSize = MinSize
	}
	s := &Store{
		minSize: minSize,
		shapes:  make([]Shape, 0, len(seed)),
		index:   make(map[string]int, len(seed)),
	}
	for _, sh := range seed {
		if err := s.insert(sh); err != nil {
			return nil, fmt.Errorf("seed shape %q: %w", sh.ID, err)
		}
	}
	return s, nil
}

// MinSize returns the minimum width/height the store enforces.
func (s *Store) MinSize() float64 {
	return s.minSize
}

// Watch registers fn to be called synchronously after every committed write.
func (s *Store) Watch(fn func(Change)) {
	s.watchers = append(s.watchers, fn)
}

// List returns a copy of all shapes in painter's order.
func (s *Store) List() []Shape {
	return slices.Clone(s.shapes)
}

func (s *Store) Get(id string) (Shape, bool) {
	i, ok := s.index[id]
	if !ok {
		return Shape{}, false
	}
	return s.shapes[i], true
}

func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.shapes)
}

// Update replaces the record for id with next. The id of next is ignored;
// the store keeps the identity. Sizes below the minimum are clamped.
// Non-finite or negative geometry is rejected and the prior record kept.
func (s *Store) Update(id string, next Shape) (Shape, error) {
	i, ok := s.index[id]
	if !ok {
		slog.Warn("update for unknown shape", "shape", id)
		return Shape{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	if !next.Valid() {
		slog.Warn("rejected invalid geometry", "shape", id, "x", next.X, "y", next.Y, "width", next.Width, "height", next.Height)
		return s.shapes[i], fmt.Errorf("update %q: %w", id, ErrInvalidGeometry)
	}

	next.ID = id
	next = next.Clamp(s.minSize)
	s.shapes[i] = next
	s.notify(Change{Kind: ChangeUpdated, Shape: next})
	return next, nil
}

// Add appends sh on top of the stack.
func (s *Store) Add(sh Shape) error {
	if err := s.insert(sh); err != nil {
		return fmt.Errorf("add %q: %w", sh.ID, err)
	}
	added, _ := s.Get(sh.ID)
	s.notify(Change{Kind: ChangeAdded, Shape: added})
	return nil
}

// Remove deletes the shape with id.
func (s *Store) Remove(id string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	removed := s.shapes[i]
	s.shapes = slices.Delete(s.shapes, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.shapes); j++ {
		s.index[s.shapes[j].ID] = j
	}
	s.notify(Change{Kind: ChangeRemoved, Shape: removed})
	return nil
}

func (s *Store) insert(sh Shape) error {
	if sh.ID == "" {
		return fmt.Errorf("empty id: %w", ErrInvalidGeometry)
	}
	if _, exists := s.index[sh.ID]; exists {
		return ErrDuplicateID
	}
	if !sh.Valid() {
		return ErrInvalidGeometry
	}
	s.index[sh.ID] = len(s.shapes)
	s.shapes = append(s.shapes, sh.Clamp(s.minSize))
	return nil
}

func (s *Store) notify(c Change) {
	for _, fn := range s.watchers {
		fn(c)
	}
}
