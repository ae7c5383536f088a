package grid

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	g := New[int](4, 3)
	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", g.Width(), g.Height())
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			g.Set(col, row, col*10+row)
		}
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if got := g.Get(col, row); got != col*10+row {
				t.Errorf("Get(%d,%d) = %d, want %d", col, row, got, col*10+row)
			}
		}
	}
}

func TestAtAliasesStorage(t *testing.T) {
	g := New[int](2, 2)
	*g.At(1, 1) = 99
	if g.Get(1, 1) != 99 {
		t.Errorf("At did not alias storage: got %d, want 99", g.Get(1, 1))
	}
}

func TestVisitCoversEveryCellOnce(t *testing.T) {
	g := New[int](3, 3)
	seen := map[[2]int]bool{}
	g.Visit(func(col, row int, v int) {
		seen[[2]int{col, row}] = true
	})
	if len(seen) != 9 {
		t.Errorf("Visit covered %d cells, want 9", len(seen))
	}
}

func TestMapPreservesDimensionsAndDoesNotMutateSource(t *testing.T) {
	src := New[int](2, 2)
	src.Set(0, 0, 1)
	src.Set(1, 0, 2)
	src.Set(0, 1, 3)
	src.Set(1, 1, 4)

	doubled := Map(src, func(col, row int, v int) int { return v * 2 })
	if doubled.Width() != 2 || doubled.Height() != 2 {
		t.Fatalf("Map changed dimensions")
	}
	if doubled.Get(1, 1) != 8 {
		t.Errorf("Map(1,1) = %d, want 8", doubled.Get(1, 1))
	}
	if src.Get(1, 1) != 4 {
		t.Error("Map mutated its source grid")
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	g := New[int](2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds access")
		}
	}()
	g.Get(2, 0)
}

func TestNegativeDimensionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative dimension")
		}
	}()
	New[int](-1, 4)
}
