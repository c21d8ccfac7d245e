package tree

// Find returns a copy of the node with the given id. The lookup is constant
// time; ids are unique so it agrees with a pre-order search for the first
// match.
func (s *Store) Find(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Contains reports whether id names a node in the forest.
func (s *Store) Contains(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len returns the total number of nodes at every depth.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Roots returns the root-level ids in order.
func (s *Store) Roots() []NodeID {
	return append([]NodeID{}, s.roots...)
}

// Children returns the ordered child ids of a container, or nil for leaf
// nodes and unknown ids.
func (s *Store) Children(id NodeID) []NodeID {
	n, ok := s.nodes[id]
	if !ok || n.Children == nil {
		return nil
	}
	return append([]NodeID{}, n.Children...)
}

// Parent returns the id of the container holding id, or ZeroID for a
// root-level node. ok is false when id is unknown.
func (s *Store) Parent(id NodeID) (NodeID, bool) {
	if _, ok := s.nodes[id]; !ok {
		return ZeroID, false
	}
	return s.parent[id], true
}

// IndexOf returns id's position within its parent sequence, or -1.
func (s *Store) IndexOf(id NodeID) int {
	if _, ok := s.nodes[id]; !ok {
		return -1
	}
	seq, _ := s.sequence(s.parent[id])
	for i, v := range *seq {
		if v == id {
			return i
		}
	}
	return -1
}

// Depth returns the number of containers above id (0 for root-level nodes),
// or -1 when id is unknown.
func (s *Store) Depth(id NodeID) int {
	if _, ok := s.nodes[id]; !ok {
		return -1
	}
	d := 0
	for p := s.parent[id]; !p.IsZero(); p = s.parent[p] {
		d++
	}
	return d
}

// IsDescendant reports whether id lies strictly inside ancestor's subtree.
// It walks the parent chain, so it costs O(depth).
func (s *Store) IsDescendant(id, ancestor NodeID) bool {
	if id.IsZero() || ancestor.IsZero() {
		return false
	}
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	for p := s.parent[id]; !p.IsZero(); p = s.parent[p] {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Walk visits every node in pre-order across the forest, roots first in
// sequence order. Returning false from fn skips the node's children.
func (s *Store) Walk(fn func(id NodeID, depth int) bool) {
	for _, r := range s.roots {
		s.walkFrom(r, 0, func(n *Node, depth int) bool {
			return fn(n.ID, depth)
		})
	}
}

func (s *Store) walkFrom(id NodeID, depth int, fn func(n *Node, depth int) bool) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		s.walkFrom(c, depth+1, fn)
	}
}
