package internal

// OrderedSet is a set of comparable values that remembers the order values were first added in.
type OrderedSet[T comparable] struct {
	items []T
	seen  map[T]struct{}
}

func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{
		seen: make(map[T]struct{}),
	}
	s.Add(items...)
	return s
}

// Add appends the values not already present and returns how many were added.
func (s *OrderedSet[T]) Add(items ...T) int {
	if s.seen == nil {
		s.seen = make(map[T]struct{})
	}
	added := 0
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.items = append(s.items, item)
		added++
	}
	return added
}

func (s *OrderedSet[T]) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// ToSlice returns a copy of the values in first-added order.
func (s *OrderedSet[T]) ToSlice() []T {
	if s == nil {
		return nil
	}
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}
