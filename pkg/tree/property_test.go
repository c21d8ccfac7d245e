package tree

import (
	"testing"

	"github.com/chazu/uiforge/pkg/component"
	"pgregory.net/rapid"
)

// editSession drives a Store with randomly chosen operations and remembers
// every id it has ever been handed, including deleted ones, so stale ids get
// exercised too.
type editSession struct {
	s    *Store
	seen []NodeID
}

func (e *editSession) pickID(t *rapid.T, label string) NodeID {
	if len(e.seen) == 0 || rapid.IntRange(0, 4).Draw(t, label+"-root") == 0 {
		return ZeroID
	}
	return rapid.SampledFrom(e.seen).Draw(t, label)
}

func (e *editSession) step(t *rapid.T) {
	switch rapid.IntRange(0, 4).Draw(t, "op") {
	case 0, 1:
		kind := rapid.SampledFrom(component.AllKinds).Draw(t, "kind")
		parent := e.pickID(t, "parent")
		index := rapid.IntRange(-2, 8).Draw(t, "index")
		if id := e.s.AddAt(kind, parent, index); !id.IsZero() {
			for _, old := range e.seen {
				if old == id {
					t.Fatalf("id %q handed out twice", id)
				}
			}
			e.seen = append(e.seen, id)
		}
	case 2:
		id := e.pickID(t, "update")
		e.s.Update(id, component.Properties{"text": component.String(rapid.String().Draw(t, "text"))})
	case 3:
		e.s.Delete(e.pickID(t, "delete"))
	case 4:
		id := e.pickID(t, "move")
		e.s.Move(id, Target{Parent: e.pickID(t, "dest"), Index: rapid.IntRange(-2, 8).Draw(t, "dest-index")})
	}
}

func TestRandomEditsKeepForestConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := &editSession{s: New()}
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			e.step(t)
			for _, v := range Validate(e.s) {
				if v.Severity == SeverityError {
					t.Fatalf("after step %d: %v", i, v)
				}
			}
			visited := 0
			e.s.Walk(func(NodeID, int) bool { visited++; return true })
			if visited != e.s.Len() {
				t.Fatalf("walk visited %d nodes, arena holds %d", visited, e.s.Len())
			}
			if sel, ok := e.s.Selected(); ok && !e.s.Contains(sel) {
				t.Fatalf("selection %q resolves to a missing node", sel)
			}
		}
	})
}

func TestMoveKeepsSiblingOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		n := rapid.IntRange(2, 8).Draw(t, "n")
		for i := 0; i < n; i++ {
			s.Add(component.KindText, ZeroID)
		}
		before := s.Roots()
		from := rapid.IntRange(0, n-1).Draw(t, "from")
		to := rapid.IntRange(0, n-1).Draw(t, "to")
		moved := before[from]

		if !s.Move(moved, Target{Parent: ZeroID, Index: to}) {
			t.Fatalf("move rejected")
		}
		after := s.Roots()
		if after[to] != moved {
			t.Fatalf("moved node at %d, want %d", s.IndexOf(moved), to)
		}

		var restBefore, restAfter []NodeID
		for _, id := range before {
			if id != moved {
				restBefore = append(restBefore, id)
			}
		}
		for _, id := range after {
			if id != moved {
				restAfter = append(restAfter, id)
			}
		}
		if ids(restBefore) != ids(restAfter) {
			t.Fatalf("relative order changed: %s -> %s", ids(restBefore), ids(restAfter))
		}
	})
}

func TestDeleteRemovesExactlySubtree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := &editSession{s: New()}
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			e.step(t)
		}
		if e.s.Len() == 0 {
			return
		}

		var live []NodeID
		e.s.Walk(func(id NodeID, _ int) bool { live = append(live, id); return true })
		victim := rapid.SampledFrom(live).Draw(t, "victim")

		doomed := map[NodeID]bool{victim: true}
		for _, id := range live {
			if e.s.IsDescendant(id, victim) {
				doomed[id] = true
			}
		}
		sel, hadSel := e.s.Selected()

		e.s.Delete(victim)

		for _, id := range live {
			if e.s.Contains(id) == doomed[id] {
				t.Fatalf("node %q: present=%v, doomed=%v", id, e.s.Contains(id), doomed[id])
			}
		}
		if e.s.Len() != len(live)-len(doomed) {
			t.Fatalf("Len = %d, want %d", e.s.Len(), len(live)-len(doomed))
		}
		_, hasSel := e.s.Selected()
		if hadSel && doomed[sel] && hasSel {
			t.Fatalf("selection %q survived deletion of its subtree", sel)
		}
		if hadSel && !doomed[sel] && !hasSel {
			t.Fatalf("selection %q lost though it was not deleted", sel)
		}
	})
}

func TestUpdateIsShallowMerge(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		kind := rapid.SampledFrom(component.AllKinds).Draw(t, "kind")
		id := s.Add(kind, ZeroID)
		before, _ := s.Find(id)

		keys := component.SchemaFor(kind).Keys()
		key := rapid.SampledFrom(keys).Draw(t, "key")
		val := component.Number(rapid.Float64Range(0, 100).Draw(t, "val"))
		s.Update(id, component.Properties{key: val})

		after, _ := s.Find(id)
		for k, v := range before.Props {
			want := v
			if k == key {
				want = val
			}
			if after.Props[k] != want {
				t.Fatalf("key %q = %v, want %v", k, after.Props[k], want)
			}
		}
	})
}
