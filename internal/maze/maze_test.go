package maze

import (
	"errors"
	"testing"

	"github.com/fangj99/gifmaze/internal/grid"
)

var _ grid.Grid = (*Maze)(nil)

func TestNewDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"even width", 4, 5},
		{"even height", 5, 4},
		{"zero", 0, 5},
		{"negative", -3, 5},
	}

	for _, tt := range tests {
		if _, err := New(tt.width, tt.height, nil); !errors.Is(err, ErrDimension) {
			t.Errorf("%s: expected ErrDimension, got %v", tt.name, err)
		}
	}
}

func TestNodesAndNeighbors(t *testing.T) {
	m, err := New(5, 3, nil)
	if err != nil {
		t.Fatal(err)
	}

	nodes := m.Nodes()
	if len(nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(nodes))
	}

	nb := m.Neighbors(grid.Cell{X: 2, Y: 0})
	want := []grid.Cell{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 2, Y: 2}}
	if len(nb) != len(want) {
		t.Fatalf("expected %v, got %v", want, nb)
	}
	for i := range want {
		if nb[i] != want[i] {
			t.Errorf("expected %v, got %v", want, nb)
		}
	}
}

func TestMarkTracksChanges(t *testing.T) {
	m, _ := New(7, 7, nil)

	m.Mark(grid.Cell{X: 2, Y: 2}, Tree)
	m.Mark(grid.Cell{X: 2, Y: 4}, Tree)

	box, ok := m.DirtyBox()
	if !ok || box != (grid.Box{Left: 2, Top: 2, Right: 2, Bottom: 4}) {
		t.Errorf("expected (2,2)-(2,4), got %v (ok=%v)", box, ok)
	}
	if m.ChangeCount() != 2 {
		t.Errorf("expected 2 changes, got %d", m.ChangeCount())
	}
	if !m.InTree(grid.Cell{X: 2, Y: 4}) {
		t.Error("expected cell in tree")
	}

	m.ResetDirty()
	if m.ChangeCount() != 0 {
		t.Errorf("expected reset counter, got %d", m.ChangeCount())
	}
	if m.Cell(grid.Cell{X: 2, Y: 2}) != Tree {
		t.Error("reset must not touch cell values")
	}
}

func TestMarkPath(t *testing.T) {
	m, _ := New(5, 5, nil)
	path := []grid.Cell{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}}

	if !m.Barrier(path[0], path[1]) {
		t.Error("expected wall before marking")
	}
	m.MarkPath(path, Path)

	for _, c := range []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}} {
		if !m.InPath(c) {
			t.Errorf("expected %v in path", c)
		}
	}
	if m.Barrier(path[0], path[1]) {
		t.Error("expected no wall after marking")
	}
	if m.ChangeCount() != 5 {
		t.Errorf("expected 5 changes, got %d", m.ChangeCount())
	}
}

func TestTextMask(t *testing.T) {
	mask := TextMask{
		"..",
		".#",
	}
	m, err := New(9, 9, mask)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range m.Nodes() {
		if v.X >= 5 && v.Y >= 5 {
			t.Errorf("node %v should be masked out", v)
		}
		for _, nb := range m.Neighbors(v) {
			if nb.X >= 5 && nb.Y >= 5 {
				t.Errorf("neighbor %v of %v should be masked out", nb, v)
			}
		}
	}
	if len(m.Nodes()) != 25-4 {
		t.Errorf("expected 21 nodes, got %d", len(m.Nodes()))
	}
}

func TestSnapshot(t *testing.T) {
	m, _ := New(3, 5, nil)
	m.Mark(grid.Cell{X: 2, Y: 4}, Fill)

	rows := m.Snapshot()
	if len(rows) != 5 || len(rows[0]) != 3 {
		t.Fatalf("expected 5 rows of 3, got %dx%d", len(rows), len(rows[0]))
	}
	if rows[4][2] != Fill {
		t.Errorf("expected fill at row 4 col 2, got %d", rows[4][2])
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want bool
	}{
		{"no mask", nil, true},
		{"corner closed", TextMask{"..", ".#"}, true},
		{"diagonal split", TextMask{"#.", ".#"}, false},
		{"all closed", TextMask{"#"}, false},
	}
	for _, tt := range tests {
		m, err := New(9, 9, tt.mask)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.Connected(); got != tt.want {
			t.Errorf("%s: Connected() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
