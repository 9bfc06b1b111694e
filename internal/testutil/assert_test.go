package testutil

import (
	"testing"
)

// mockTB captures whether a test failure occurred.
type mockTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
}

func (m *mockTB) Helper()                           {}
func (m *mockTB) Fatal(args ...any)                 { m.failed = true }
func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func TestEqual(t *testing.T) {
	m := &mockTB{}

	Equal(m, 1, 1)
	if m.failed {
		t.Error("Equal(1, 1) should pass")
	}

	m.failed = false
	Equal(m, "foo", "foo")
	if m.failed {
		t.Error("Equal(foo, foo) should pass")
	}

	m.failed = false
	Equal(m, 1, 2)
	if !m.failed {
		t.Error("Equal(1, 2) should fail")
	}
}

func TestSliceEqual(t *testing.T) {
	m := &mockTB{}

	SliceEqual(m, []int{1, 2, 3}, []int{1, 2, 3})
	if m.failed {
		t.Error("equal slices should pass")
	}

	m.failed = false
	SliceEqual(m, []int{}, []int{})
	if m.failed {
		t.Error("empty slices should pass")
	}

	m.failed = false
	SliceEqual(m, []int{1, 2}, []int{1, 2, 3})
	if !m.failed {
		t.Error("different length slices should fail")
	}

	m.failed = false
	SliceEqual(m, []int{1, 2, 3}, []int{1, 9, 3})
	if !m.failed {
		t.Error("different content should fail")
	}
}

func TestInDelta(t *testing.T) {
	m := &mockTB{}

	InDelta(m, 1.0, 1.0000001, 1e-6)
	if m.failed {
		t.Error("values within delta should pass")
	}

	m.failed = false
	InDelta(m, 1.0, 1.1, 1e-6)
	if !m.failed {
		t.Error("values outside delta should fail")
	}
}

func TestLen(t *testing.T) {
	m := &mockTB{}

	Len(m, []string{"a", "b"}, 2)
	if m.failed {
		t.Error("Len 2 of 2-slice should pass")
	}

	m.failed = false
	Len(m, []string{"a"}, 2)
	if !m.failed {
		t.Error("Len 2 of 1-slice should fail")
	}
}

func TestContains(t *testing.T) {
	m := &mockTB{}

	Contains(m, "expected number, found '}'", "number")
	if m.failed {
		t.Error("substring should pass")
	}

	m.failed = false
	Contains(m, "abc", "xyz")
	if !m.failed {
		t.Error("missing substring should fail")
	}
}
