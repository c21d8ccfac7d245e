package tree

import (
	"github.com/chazu/uiforge/pkg/component"
	"github.com/goccy/go-json"
)

// SnapshotNode is a detached, nested copy of a node and its subtree. Changes
// to the Store after the snapshot was taken are not visible through it.
type SnapshotNode struct {
	ID       NodeID
	Kind     component.Kind
	Props    component.Properties
	Children []SnapshotNode // nil for leaf kinds, non-nil for containers
}

// snapshotJSON keeps an empty container's children as [] while omitting the
// field for leaf kinds.
type snapshotJSON struct {
	ID       NodeID               `json:"id"`
	Kind     component.Kind       `json:"kind"`
	Props    component.Properties `json:"props"`
	Children *[]SnapshotNode      `json:"children,omitempty"`
}

func (n SnapshotNode) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{ID: n.ID, Kind: n.Kind, Props: n.Props}
	if n.Children != nil {
		children := n.Children
		out.Children = &children
	}
	return json.Marshal(out)
}

func (n *SnapshotNode) UnmarshalJSON(b []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*n = SnapshotNode{ID: in.ID, Kind: in.Kind, Props: in.Props}
	if in.Children != nil {
		n.Children = *in.Children
		if n.Children == nil {
			n.Children = []SnapshotNode{}
		}
	}
	return nil
}

// State is the read view handed to renderers: the forest plus the selection.
type State struct {
	Forest   []SnapshotNode `json:"forest"`
	Selected NodeID         `json:"selected,omitempty"`
}

// Snapshot returns a deep copy of the forest in display order.
func (s *Store) Snapshot() []SnapshotNode {
	out := make([]SnapshotNode, 0, len(s.roots))
	for _, r := range s.roots {
		out = append(out, s.snapshotNode(r))
	}
	return out
}

func (s *Store) snapshotNode(id NodeID) SnapshotNode {
	n := s.nodes[id]
	sn := SnapshotNode{ID: n.ID, Kind: n.Kind, Props: n.Props.Clone()}
	if n.Children != nil {
		sn.Children = make([]SnapshotNode, 0, len(n.Children))
		for _, c := range n.Children {
			sn.Children = append(sn.Children, s.snapshotNode(c))
		}
	}
	return sn
}

// State returns the forest snapshot together with the resolved selection.
func (s *Store) State() State {
	sel, _ := s.Selected()
	return State{Forest: s.Snapshot(), Selected: sel}
}

// Count returns the number of nodes in a snapshot forest, at every depth.
func Count(forest []SnapshotNode) int {
	n := 0
	for _, sn := range forest {
		n += 1 + Count(sn.Children)
	}
	return n
}
