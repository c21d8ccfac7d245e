// Package tree holds the component forest a canvas edits: an arena of nodes
// keyed by id, the ordered root sequence, a parent index, and the current
// selection. Every mutation goes through Store.
package tree

import (
	"fmt"
	"strings"

	"github.com/chazu/uiforge/pkg/component"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// NodeID identifies a node for its whole lifetime. IDs are never reused.
type NodeID string

// ZeroID is the empty id. As a parent it names the root sequence.
const ZeroID NodeID = ""

// IsZero reports whether id is the empty id.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns an abbreviated form for messages: the kind prefix plus the
// first block of the uuid.
func (id NodeID) Short() string {
	s := string(id)
	kind, rest, ok := strings.Cut(s, "-")
	if !ok {
		return s
	}
	if block, _, ok := strings.Cut(rest, "-"); ok {
		return kind + "-" + block
	}
	return s
}

// NewNodeID returns a fresh id for a node of the given kind.
func NewNodeID(k component.Kind) NodeID {
	return NodeID(fmt.Sprintf("%s-%s", k, uuid.NewString()))
}

// Node is a single component instance.
type Node struct {
	ID    NodeID
	Kind  component.Kind
	Props component.Properties
	// Children is non-nil (possibly empty) exactly when Kind is a container
	// kind, and nil for every leaf kind.
	Children []NodeID
}

// nodeJSON encodes an empty container's children as [] and omits the field
// for leaf kinds, the same shape snapshots use.
type nodeJSON struct {
	ID       NodeID               `json:"id"`
	Kind     component.Kind       `json:"kind"`
	Props    component.Properties `json:"props"`
	Children *[]NodeID            `json:"children,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{ID: n.ID, Kind: n.Kind, Props: n.Props}
	if n.Children != nil {
		children := n.Children
		out.Children = &children
	}
	return json.Marshal(out)
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*n = Node{ID: in.ID, Kind: in.Kind, Props: in.Props}
	if in.Children != nil {
		n.Children = *in.Children
		if n.Children == nil {
			n.Children = []NodeID{}
		}
	}
	return nil
}

// clone returns a copy that shares nothing mutable with n.
func (n *Node) clone() Node {
	c := Node{ID: n.ID, Kind: n.Kind, Props: n.Props.Clone()}
	if n.Children != nil {
		c.Children = append([]NodeID{}, n.Children...)
	}
	return c
}

// Target is a drop position: a parent sequence (ZeroID for the root sequence)
// and an index into it.
type Target struct {
	Parent NodeID `json:"parentId"`
	Index  int    `json:"index"`
}
