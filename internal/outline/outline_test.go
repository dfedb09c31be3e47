// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"encoding/json"
	"testing"

	"github.com/pdiddy/outline-engine/pkg/types"
)

func addMain(t *testing.T, s *Store, text string) types.OutlinePoint {
	t.Helper()
	p, ok := s.AddPoint(text, types.LevelMain, "")
	if !ok {
		t.Fatalf("AddPoint(%q, main) failed", text)
	}
	return p
}

func addSub(t *testing.T, s *Store, text, parentID string) types.OutlinePoint {
	t.Helper()
	p, ok := s.AddPoint(text, types.LevelSub, parentID)
	if !ok {
		t.Fatalf("AddPoint(%q, sub, %s) failed", text, parentID)
	}
	return p
}

func mainTexts(s *Store) []string {
	var texts []string
	for _, p := range s.Mains() {
		texts = append(texts, p.Text)
	}
	return texts
}

func TestAddPointBlankTextIsNoOp(t *testing.T) {
	s := New()
	if _, ok := s.AddPoint("   \t", types.LevelMain, ""); ok {
		t.Fatal("blank text should not add a point")
	}
	if len(s.Points()) != 0 {
		t.Fatalf("store has %d points, want 0", len(s.Points()))
	}
}

func TestAddSubWithoutParentIsNoOp(t *testing.T) {
	s := New()
	if _, ok := s.AddPoint("orphan", types.LevelSub, "missing"); ok {
		t.Fatal("sub-point with unresolvable parent should not be added")
	}
}

func TestAddSubUnderSubIsNoOp(t *testing.T) {
	s := New()
	m := addMain(t, s, "Intro")
	sub := addSub(t, s, "Background", m.ID)

	// Depth is capped at 2: a sub-point may not take children.
	if _, ok := s.AddPoint("too deep", types.LevelSub, sub.ID); ok {
		t.Fatal("sub-point under a sub-point should not be added")
	}
}

func TestTreeShape(t *testing.T) {
	s := New()
	intro := addMain(t, s, "Intro")
	body := addMain(t, s, "Body")
	addSub(t, s, "Background", intro.ID)
	addSub(t, s, "Motivation", intro.ID)

	tree := s.Tree()
	if len(tree) != 2 {
		t.Fatalf("tree has %d branches, want 2", len(tree))
	}
	if tree[0].Point.ID != intro.ID || tree[1].Point.ID != body.ID {
		t.Fatal("branches out of order")
	}
	if len(tree[0].Children) != 2 || tree[0].Children[0].Text != "Background" {
		t.Fatalf("Intro children = %+v", tree[0].Children)
	}
	if len(tree[1].Children) != 0 {
		t.Fatal("Body should have no children")
	}
}

func TestDeleteMainCascadesToChildren(t *testing.T) {
	s := New()
	intro := addMain(t, s, "Intro")
	body := addMain(t, s, "Body")
	bg := addSub(t, s, "Background", intro.ID)

	removed := s.DeletePoint(intro.ID)
	if len(removed) != 2 {
		t.Fatalf("removed %d ids, want 2 (point + sub)", len(removed))
	}
	got := map[string]bool{}
	for _, id := range removed {
		got[id] = true
	}
	if !got[intro.ID] || !got[bg.ID] {
		t.Fatalf("removed ids %v missing point or sub", removed)
	}
	if _, ok := s.Find(body.ID); !ok {
		t.Fatal("unrelated point was removed")
	}
}

func TestDeleteSubLeavesSiblings(t *testing.T) {
	s := New()
	intro := addMain(t, s, "Intro")
	bg := addSub(t, s, "Background", intro.ID)
	addSub(t, s, "Motivation", intro.ID)

	removed := s.DeletePoint(bg.ID)
	if len(removed) != 1 || removed[0] != bg.ID {
		t.Fatalf("removed = %v, want just the sub", removed)
	}
	if len(s.Children(intro.ID)) != 1 {
		t.Fatal("sibling sub-point was removed")
	}
}

func TestDeleteUnknownIDRemovesNothing(t *testing.T) {
	s := New()
	addMain(t, s, "Intro")
	if removed := s.DeletePoint("nope"); removed != nil {
		t.Fatalf("removed = %v, want nil", removed)
	}
	if len(s.Points()) != 1 {
		t.Fatal("point count changed")
	}
}

func TestMovePoint(t *testing.T) {
	s := New()
	addMain(t, s, "A")
	addMain(t, s, "B")
	addMain(t, s, "C")

	if !s.MovePoint(1, MoveUp) {
		t.Fatal("move up failed")
	}
	want := []string{"B", "A", "C"}
	got := mainTexts(s)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after move up: %v, want %v", got, want)
		}
	}

	if s.MovePoint(0, MoveUp) {
		t.Fatal("move past top boundary should be a no-op")
	}
	if s.MovePoint(2, MoveDown) {
		t.Fatal("move past bottom boundary should be a no-op")
	}
}

func TestMovePreservesChildAttachment(t *testing.T) {
	s := New()
	a := addMain(t, s, "A")
	addMain(t, s, "B")
	sub := addSub(t, s, "A1", a.ID)

	if !s.MovePoint(0, MoveDown) {
		t.Fatal("move down failed")
	}
	children := s.Children(a.ID)
	if len(children) != 1 || children[0].ID != sub.ID {
		t.Fatal("children lost after moving the parent")
	}
}

func TestRoundTrip(t *testing.T) {
	s := New()
	intro := addMain(t, s, "Intro")
	addMain(t, s, "Body")
	addSub(t, s, "Background", intro.ID)

	data, err := json.Marshal(s.Points())
	if err != nil {
		t.Fatal(err)
	}

	var points []types.OutlinePoint
	if err := json.Unmarshal(data, &points); err != nil {
		t.Fatal(err)
	}

	restored := New()
	restored.Restore(points)

	orig, back := s.Points(), restored.Points()
	if len(orig) != len(back) {
		t.Fatalf("round trip changed count: %d -> %d", len(orig), len(back))
	}
	for i := range orig {
		if orig[i] != back[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, orig[i], back[i])
		}
	}
}
