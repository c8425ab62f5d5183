package element

import (
	"cmp"
	"fmt"
	"slices"
)

// Store is the authoritative set of elements, keyed by id. It assigns
// z-indices in insertion order. Update is the only way to change a stored
// element; values handed out by Get and Ordered must not be modified.
//
// A Store is not safe for concurrent use.
type Store struct {
	factory  *Factory
	elements map[string]Element
	nextZ    int
}

// NewStore returns an empty store deriving elements with f. A nil f means a
// zero Factory.
func NewStore(f *Factory) *Store {
	if f == nil {
		f = &Factory{}
	}
	return &Store{
		factory:  f,
		elements: make(map[string]Element),
	}
}

// Factory returns the factory the store derives elements with.
func (s *Store) Factory() *Factory { return s.factory }

// Create derives a new element, places it above every existing element and
// stores it.
func (s *Store) Create(kind Kind, p Params) (Element, error) {
	el, err := s.factory.Create(kind, p)
	if err != nil {
		return Element{}, err
	}
	el.ZIndex = s.nextZ
	s.nextZ++
	s.elements[el.ID] = el
	return el, nil
}

// Update replaces the element stored under id with a re-derived value.
func (s *Store) Update(id string, patch Patch) (Element, error) {
	prev, ok := s.elements[id]
	if !ok {
		return Element{}, fmt.Errorf("update %q: %w", id, ErrUnknownElement)
	}
	el, err := s.factory.Update(prev, patch)
	if err != nil {
		return Element{}, err
	}
	s.elements[id] = el
	return el, nil
}

// Delete removes the element and reports whether it existed.
func (s *Store) Delete(id string) bool {
	if _, ok := s.elements[id]; !ok {
		return false
	}
	delete(s.elements, id)
	return true
}

func (s *Store) Get(id string) (Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

func (s *Store) Len() int { return len(s.elements) }

// Ordered returns every element in paint order, lowest z-index first.
func (s *Store) Ordered() []Element {
	out := make([]Element, 0, len(s.elements))
	for _, el := range s.elements {
		out = append(out, el)
	}
	slices.SortFunc(out, func(a, b Element) int {
		return cmp.Or(cmp.Compare(a.ZIndex, b.ZIndex), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Clear removes every element. Z-indices keep counting up.
func (s *Store) Clear() {
	clear(s.elements)
}
