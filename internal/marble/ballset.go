package marble

import "container/list"

// ballSet is an insertion-ordered id -> *Ball map.
// Insert, remove and lookup are O(1); iteration follows insertion order.
type ballSet struct {
	order *list.List               // of *Ball
	index map[string]*list.Element // id -> element in order
}

func newBallSet() *ballSet {
	return &ballSet{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

func (s *ballSet) Len() int {
	return s.order.Len()
}

func (s *ballSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *ballSet) Get(id string) (*Ball, bool) {
	e, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return e.Value.(*Ball), true
}

// Push appends b at the end of the insertion order.
// The caller guarantees b.ID is not already present.
func (s *ballSet) Push(b *Ball) {
	s.index[b.ID] = s.order.PushBack(b)
}

// Remove deletes id and returns the ball, or nil if absent.
func (s *ballSet) Remove(id string) *Ball {
	e, ok := s.index[id]
	if !ok {
		return nil
	}
	delete(s.index, id)
	return s.order.Remove(e).(*Ball)
}

// PopFront removes and returns the oldest ball, or nil when empty.
func (s *ballSet) PopFront() *Ball {
	e := s.order.Front()
	if e == nil {
		return nil
	}
	b := e.Value.(*Ball)
	delete(s.index, b.ID)
	s.order.Remove(e)
	return b
}

// Slice returns the live balls in insertion order. The slice is fresh but
// the pointers are shared; callers that hand balls out must copy them.
func (s *ballSet) Slice() []*Ball {
	out := make([]*Ball, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Ball))
	}
	return out
}

func (s *ballSet) clone() *ballSet {
	c := newBallSet()
	for e := s.order.Front(); e != nil; e = e.Next() {
		b := *e.Value.(*Ball)
		c.Push(&b)
	}
	return c
}
