package tree

import "github.com/chazu/uiforge/pkg/component"

// Store owns a component forest and the selection. It is not safe for
// concurrent use; callers that share a Store across goroutines must serialize
// access themselves.
//
// Operations never fail: an id that names no node, a parent that cannot hold
// children, or a drop into the dragged node's own subtree degrades to a
// no-op. Mutators report whether anything changed.
type Store struct {
	nodes    map[NodeID]*Node
	roots    []NodeID
	parent   map[NodeID]NodeID // ZeroID for root-level nodes
	selected NodeID
	newID    func(component.Kind) NodeID
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-based id generator. The generator must
// never return an id it returned before.
func WithIDGenerator(fn func(component.Kind) NodeID) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		nodes:  make(map[NodeID]*Node),
		parent: make(map[NodeID]NodeID),
		newID:  NewNodeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new node of kind k to parent's children, or to the root
// sequence when parent is ZeroID. See AddAt.
func (s *Store) Add(k component.Kind, parent NodeID) NodeID {
	seq, ok := s.sequence(parent)
	if !ok {
		return ZeroID
	}
	return s.insertNew(k, parent, len(*seq))
}

// AddAt creates a node of kind k with the kind's default properties and
// inserts it at index (clamped to [0, len]) in parent's children, or in the
// root sequence when parent is ZeroID. The new node becomes the selection and
// its id is returned.
//
// No node is created, and ZeroID is returned, when k is not a known kind or
// parent names no container node.
func (s *Store) AddAt(k component.Kind, parent NodeID, index int) NodeID {
	return s.insertNew(k, parent, index)
}

func (s *Store) insertNew(k component.Kind, parent NodeID, index int) NodeID {
	if !k.Valid() {
		return ZeroID
	}
	seq, ok := s.sequence(parent)
	if !ok {
		return ZeroID
	}
	id := s.newID(k)
	if id.IsZero() {
		return ZeroID
	}
	if _, taken := s.nodes[id]; taken {
		return ZeroID
	}

	n := &Node{ID: id, Kind: k, Props: component.Defaults(k)}
	if k.IsContainer() {
		n.Children = []NodeID{}
	}
	s.nodes[id] = n
	s.parent[id] = parent
	*seq = insertAt(*seq, index, id)
	s.selected = id
	return id
}

// Update shallow-merges patch over the node's properties: keys in the patch
// replace the stored value whole, other keys are left alone. The patch is not
// checked against the node's kind.
func (s *Store) Update(id NodeID, patch component.Properties) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Props.Merge(patch)
	return true
}

// Delete removes the node and its entire subtree. The selection is cleared
// when it pointed at any removed node.
func (s *Store) Delete(id NodeID) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	seq, _ := s.sequence(s.parent[id])
	*seq = removeID(*seq, id)

	clearSelection := false
	s.walkFrom(id, 0, func(n *Node, _ int) bool {
		if n.ID == s.selected {
			clearSelection = true
		}
		return true
	})
	s.dropSubtree(id)
	if clearSelection {
		s.selected = ZeroID
	}
	return true
}

// dropSubtree forgets id and all of its descendants.
func (s *Store) dropSubtree(id NodeID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	for _, c := range n.Children {
		s.dropSubtree(c)
	}
	delete(s.nodes, id)
	delete(s.parent, id)
}

// CanMove reports whether Move(id, t) would change the tree: the node exists,
// the target is the root sequence or a container, and the target is neither
// the node itself nor inside its subtree.
func (s *Store) CanMove(id NodeID, t Target) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	if t.Parent == id {
		return false
	}
	if _, ok := s.sequence(t.Parent); !ok {
		return false
	}
	return !s.IsDescendant(t.Parent, id)
}

// Move relocates the node to t. The index is read against the destination
// sequence as it stands after the node has been removed from its old
// position, and is clamped to that sequence's bounds. Identity, kind,
// properties and children travel with the node unchanged.
func (s *Store) Move(id NodeID, t Target) bool {
	if !s.CanMove(id, t) {
		return false
	}
	src, _ := s.sequence(s.parent[id])
	*src = removeID(*src, id)

	dst, _ := s.sequence(t.Parent)
	*dst = insertAt(*dst, t.Index, id)
	s.parent[id] = t.Parent
	return true
}

// Select sets the selection. The id is not checked against the tree; a stale
// selection reads as none (see Selected).
func (s *Store) Select(id NodeID) {
	s.selected = id
}

// ClearSelection sets the selection to none.
func (s *Store) ClearSelection() {
	s.selected = ZeroID
}

// Selected returns the selected id. ok is false when nothing is selected or
// the selected id no longer names a node.
func (s *Store) Selected() (NodeID, bool) {
	if s.selected.IsZero() {
		return ZeroID, false
	}
	if _, ok := s.nodes[s.selected]; !ok {
		return ZeroID, false
	}
	return s.selected, true
}

// SelectedNode returns a copy of the selected node.
func (s *Store) SelectedNode() (Node, bool) {
	id, ok := s.Selected()
	if !ok {
		return Node{}, false
	}
	return s.Find(id)
}

// sequence returns the child list a parent id designates: the root sequence
// for ZeroID, the node's children for a container. ok is false for unknown
// ids and leaf nodes.
func (s *Store) sequence(parent NodeID) (*[]NodeID, bool) {
	if parent.IsZero() {
		return &s.roots, true
	}
	n, ok := s.nodes[parent]
	if !ok || !n.Kind.IsContainer() {
		return nil, false
	}
	return &n.Children, true
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// insertAt inserts id at index i (clamped) and returns the grown slice.
func insertAt(seq []NodeID, i int, id NodeID) []NodeID {
	i = clamp(i, len(seq))
	seq = append(seq, ZeroID)
	copy(seq[i+1:], seq[i:])
	seq[i] = id
	return seq
}

// removeID deletes the first occurrence of id, preserving order.
func removeID(seq []NodeID, id NodeID) []NodeID {
	for i, v := range seq {
		if v == id {
			return append(seq[:i], seq[i+1:]...)
		}
	}
	return seq
}
