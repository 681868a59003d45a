package selection

import "github.com/philipparndt/gosolid/internal/editor"

// ItemSet is an insertion-ordered set of selectables. Mutation is kept
// inside the package so that readers cannot bypass the signals.
type ItemSet struct {
	items []editor.Selectable
	index map[editor.Selectable]struct{}
}

func newItemSet() *ItemSet {
	return &ItemSet{index: make(map[editor.Selectable]struct{})}
}

// Has reports membership
func (s *ItemSet) Has(item editor.Selectable) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of members
func (s *ItemSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the members in insertion order
func (s *ItemSet) Items() []editor.Selectable {
	out := make([]editor.Selectable, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ItemSet) add(item editor.Selectable) bool {
	if s.Has(item) {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *ItemSet) delete(item editor.Selectable) bool {
	if !s.Has(item) {
		return false
	}
	delete(s.index, item)
	for i, cur := range s.items {
		if cur == item {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

func (s *ItemSet) clear() {
	s.items = nil
	s.index = make(map[editor.Selectable]struct{})
}
