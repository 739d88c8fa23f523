package svector

import "testing"

func TestNewAtSet(t *testing.T) {
	s := New[int](3)
	for i := -3; i < 3; i++ {
		s.Set(i, i*10)
	}
	for i := -3; i < 3; i++ {
		if got := s.At(i); got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestGrow(t *testing.T) {
	s := New[int](0)
	s.Grow(-1, 1)
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
	if s.At(-1) != -1 || s.At(0) != 1 {
		t.Fatalf("Grow endpoints wrong: At(-1)=%d At(0)=%d", s.At(-1), s.At(0))
	}
	s.Grow(-2, 2)
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	if s.At(-2) != -2 || s.At(1) != 2 {
		t.Fatalf("second Grow endpoints wrong: At(-2)=%d At(1)=%d", s.At(-2), s.At(1))
	}
	// previously set cells must survive the reallocation triggered by Grow
	if s.At(-1) != -1 || s.At(0) != 1 {
		t.Fatalf("Grow lost previous cells: At(-1)=%d At(0)=%d", s.At(-1), s.At(0))
	}
}

func TestGrowManyTriggersReallocRepeatedly(t *testing.T) {
	s := New[int](0)
	for i := 1; i <= 100; i++ {
		s.Grow(-i, i)
	}
	if s.Size() != 100 {
		t.Fatalf("Size() = %d, want 100", s.Size())
	}
	for i := 1; i <= 100; i++ {
		if s.At(-i) != -i {
			t.Fatalf("At(%d) = %d, want %d", -i, s.At(-i), -i)
		}
		if s.At(i-1) != i {
			t.Fatalf("At(%d) = %d, want %d", i-1, s.At(i-1), i)
		}
	}
}

func TestGrowAliasingHazard(t *testing.T) {
	// Growing with arguments that reference existing cells must not
	// corrupt the value before it's copied, even across a reallocation.
	s := New[int](1)
	s.Set(-1, 5)
	s.Set(0, 7)
	s.Grow(s.At(-1), s.At(0))
	if s.At(-2) != 5 || s.At(1) != 7 {
		t.Fatalf("aliasing hazard: At(-2)=%d At(1)=%d, want 5/7", s.At(-2), s.At(1))
	}
}

func TestResizeGrowsAndDefaultInits(t *testing.T) {
	s := New[int](1)
	s.Set(-1, 9)
	s.Set(0, 9)
	s.Resize(4)
	if s.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", s.Size())
	}
	if s.At(-1) != 9 || s.At(0) != 9 {
		t.Fatalf("Resize lost existing cells")
	}
	for i := 1; i < 4; i++ {
		if s.At(i) != 0 {
			t.Errorf("At(%d) = %d, want 0 (default-initialized)", i, s.At(i))
		}
		if s.At(-i-1) != 0 {
			t.Errorf("At(%d) = %d, want 0 (default-initialized)", -i-1, s.At(-i-1))
		}
	}
}

func TestResizeShrink(t *testing.T) {
	s := New[int](5)
	s.Resize(2)
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
}

func TestClear(t *testing.T) {
	s := New[int](3)
	s.Clear()
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestSwap(t *testing.T) {
	a := New[int](2)
	a.Set(-1, 1)
	b := New[int](3)
	b.Set(-1, 2)
	a.Swap(b)
	if a.Size() != 3 || b.Size() != 2 {
		t.Fatalf("Swap did not exchange sizes: a=%d b=%d", a.Size(), b.Size())
	}
	if a.At(-1) != 2 || b.At(-1) != 1 {
		t.Fatalf("Swap did not exchange contents")
	}
}
