package tree

import (
	"fmt"
	"sort"

	"github.com/chazu/uiforge/pkg/component"
)

// ValidationSeverity indicates whether a finding means the forest is broken
// or merely unusual.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // invariant violated
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if forest-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Validate audits the Store's structural invariants and returns every
// finding. An empty result means the forest is consistent. Validate never
// mutates the Store.
//
// Warnings flag property keys outside a kind's schema and a stale selection;
// both are legal states since patches are merged verbatim and selection is
// not checked on Select.
func Validate(s *Store) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(s)...)
	errs = append(errs, validateOwnership(s)...)
	errs = append(errs, validateShape(s)...)
	errs = append(errs, validateAcyclic(s)...)
	errs = append(errs, validateReachable(s)...)
	errs = append(errs, validateSelection(s)...)
	errs = append(errs, validateProps(s)...)
	return errs
}

// sortedIDs returns the arena's ids in a stable order so findings come out
// deterministically.
func sortedIDs(s *Store) []NodeID {
	ids := make([]NodeID, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// validateReferences checks that every id held in the root sequence or in a
// child list names a node in the arena, and that arena keys match node ids.
func validateReferences(s *Store) []ValidationError {
	var errs []ValidationError

	for _, rid := range s.roots {
		if _, ok := s.nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}

	for _, id := range sortedIDs(s) {
		n := s.nodes[id]
		if n.ID != id {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("arena key does not match node id %s", n.ID.Short()),
				Severity: SeverityError,
			})
		}
		for _, cid := range n.Children {
			if _, ok := s.nodes[cid]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("child reference %s does not exist", cid.Short()),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateOwnership checks that each node sits in exactly one parent
// sequence and that the parent index agrees with where it sits.
func validateOwnership(s *Store) []ValidationError {
	var errs []ValidationError

	owners := make(map[NodeID][]NodeID)
	for _, rid := range s.roots {
		owners[rid] = append(owners[rid], ZeroID)
	}
	for _, id := range sortedIDs(s) {
		for _, cid := range s.nodes[id].Children {
			owners[cid] = append(owners[cid], id)
		}
	}

	for _, id := range sortedIDs(s) {
		held := owners[id]
		if len(held) > 1 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node appears in %d parent sequences", len(held)),
				Severity: SeverityError,
			})
			continue
		}
		p, indexed := s.parent[id]
		if !indexed {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "node missing from parent index",
				Severity: SeverityError,
			})
			continue
		}
		if len(held) == 1 && held[0] != p {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("parent index says %q but node is held by %q", p.Short(), held[0].Short()),
				Severity: SeverityError,
			})
		}
	}

	for id := range s.parent {
		if _, ok := s.nodes[id]; !ok {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "parent index entry for a node that does not exist",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateShape checks that children are present exactly for container kinds.
func validateShape(s *Store) []ValidationError {
	var errs []ValidationError

	for _, id := range sortedIDs(s) {
		n := s.nodes[id]
		switch {
		case !n.Kind.Valid():
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("invalid kind %d", int(n.Kind)),
				Severity: SeverityError,
			})
		case n.Kind.IsContainer() && n.Children == nil:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%s must carry a child list", n.Kind),
				Severity: SeverityError,
			})
		case !n.Kind.IsContainer() && n.Children != nil:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("%s is a leaf kind but carries a child list", n.Kind),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateAcyclic checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateAcyclic(s *Store) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s contains itself", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		n, ok := s.nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, cid := range n.Children {
			if visit(cid) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range sortedIDs(s) {
		if color[id] == white && visit(id) {
			break
		}
	}

	return errs
}

// validateReachable reports arena nodes that cannot be reached from the root
// sequence. Such nodes are leaked: no operation can address their position.
func validateReachable(s *Store) []ValidationError {
	var errs []ValidationError

	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(s.roots))
	for _, rid := range s.roots {
		if !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		n := s.nodes[current]
		if n == nil {
			continue
		}
		for _, cid := range n.Children {
			if !reachable[cid] {
				reachable[cid] = true
				queue = append(queue, cid)
			}
		}
	}

	for _, id := range sortedIDs(s) {
		if !reachable[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  "node is not reachable from the root sequence (orphan)",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

func validateSelection(s *Store) []ValidationError {
	if s.selected.IsZero() {
		return nil
	}
	if _, ok := s.nodes[s.selected]; ok {
		return nil
	}
	return []ValidationError{{
		Message:  fmt.Sprintf("selection %s names no node and reads as none", s.selected.Short()),
		Severity: SeverityWarning,
	}}
}

// validateProps flags properties a kind's editors would never read.
func validateProps(s *Store) []ValidationError {
	var errs []ValidationError

	for _, id := range sortedIDs(s) {
		n := s.nodes[id]
		schema := component.SchemaFor(n.Kind)
		for _, key := range n.Props.Keys(n.Kind) {
			if !schema.Allows(key) {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("property %q does not apply to %s", key, n.Kind),
					Severity: SeverityWarning,
				})
			}
			if n.Props[key] == nil {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("property %q has no value", key),
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}
