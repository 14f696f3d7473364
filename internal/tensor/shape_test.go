package tensor

import (
	"errors"
	"testing"
)

func assertShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestShapeElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1}, // scalar
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{1, 1, 1}, 1},
	}

	for _, tt := range tests {
		if got := tt.shape.Elements(); got != tt.want {
			t.Errorf("%v.Elements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeDim(t *testing.T) {
	s := Shape{2, 3, 4}

	tests := []struct {
		idx  int
		want int
	}{
		{0, 2},
		{1, 3},
		{2, 4},
		{-1, 4},
		{-2, 3},
		{-3, 2},
	}

	for _, tt := range tests {
		got, err := s.Dim(tt.idx)
		if err != nil {
			t.Fatalf("Dim(%d) returned error: %v", tt.idx, err)
		}
		if got != tt.want {
			t.Errorf("Dim(%d) = %d, want %d", tt.idx, got, tt.want)
		}
	}
}

func TestShapeDimOutOfRange(t *testing.T) {
	s := Shape{2, 3, 4}

	// Wrapping that still lands outside bounds is an explicit error,
	// not a fallback to dimension 0.
	for _, idx := range []int{3, 7, -4, -10} {
		if _, err := s.Dim(idx); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Dim(%d) error = %v, want ErrOutOfRange", idx, err)
		}
	}

	if _, err := (Shape{}).Dim(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("scalar Dim(0) error = %v, want ErrOutOfRange", err)
	}
}

func TestShapePop(t *testing.T) {
	assertShape(t, Shape{3, 4}, Shape{2, 3, 4}.Pop(), "pop outer dim")
	assertShape(t, Shape{}, Shape{5}.Pop(), "pop to scalar")
	assertShape(t, Shape{}, Shape{}.Pop(), "pop scalar")
}

func TestShapePopIsIndependent(t *testing.T) {
	s := Shape{2, 3, 4}
	sub := s.Pop()
	sub[0] = 99
	if s[1] != 3 {
		t.Errorf("mutating popped shape changed the source: %v", s)
	}
}

func TestShapeReshapeIdentity(t *testing.T) {
	for _, s := range []Shape{{}, {5}, {2, 3}, {2, 3, 4}} {
		got, err := s.Reshape(s)
		if err != nil {
			t.Fatalf("Reshape(%v, %v) returned error: %v", s, s, err)
		}
		assertShape(t, s, got, "identity reshape")
	}
}

func TestShapeReshapeWildcard(t *testing.T) {
	s := Shape{2, 3, 4} // 24 elements

	got, err := s.Reshape(Shape{4, Wild})
	if err != nil {
		t.Fatalf("Reshape to [4 -1] returned error: %v", err)
	}
	assertShape(t, Shape{4, 6}, got, "wildcard inference")

	got, err = s.Reshape(Shape{Wild})
	if err != nil {
		t.Fatalf("Reshape to [-1] returned error: %v", err)
	}
	assertShape(t, Shape{24}, got, "flatten")

	got, err = s.Reshape(Shape{2, Wild, 2})
	if err != nil {
		t.Fatalf("Reshape to [2 -1 2] returned error: %v", err)
	}
	assertShape(t, Shape{2, 6, 2}, got, "middle wildcard")
}

func TestShapeReshapeFailures(t *testing.T) {
	s := Shape{2, 3, 4} // 24 elements

	tests := []struct {
		target Shape
		name   string
	}{
		{Shape{Wild, Wild}, "multiple wildcards"},
		{Shape{5, Wild}, "non-divisible wildcard"},
		{Shape{2, 3}, "too few elements"},
		{Shape{2, 3, 4, 2}, "too many elements"},
		{Shape{0, Wild}, "zero dimension"},
		{Shape{24, 0}, "trailing zero dimension"},
		{Shape{-3}, "negative non-wildcard dimension"},
	}

	for _, tt := range tests {
		if _, err := s.Reshape(tt.target); !errors.Is(err, ErrIncompatibleShape) {
			t.Errorf("%s: Reshape(%v, %v) error = %v, want ErrIncompatibleShape", tt.name, s, tt.target, err)
		}
	}
}

func TestShapeReshapeScalar(t *testing.T) {
	got, err := Shape{}.Reshape(Shape{})
	if err != nil {
		t.Fatalf("scalar identity reshape returned error: %v", err)
	}
	assertShape(t, Shape{}, got, "scalar to scalar")

	got, err = Shape{}.Reshape(Shape{1, 1})
	if err != nil {
		t.Fatalf("scalar to [1 1] returned error: %v", err)
	}
	assertShape(t, Shape{1, 1}, got, "scalar to ones")

	if _, err := (Shape{}).Reshape(Shape{2}); !errors.Is(err, ErrIncompatibleShape) {
		t.Errorf("scalar to [2] error = %v, want ErrIncompatibleShape", err)
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b Shape
		want bool
	}{
		{Shape{2, 3}, Shape{2, 3}, true},
		{Shape{2, 3}, Shape{3, 2}, false},
		{Shape{2, 3}, Shape{2, 3, 1}, false},
		{Shape{}, Shape{}, true},
		{Shape{}, Shape{1}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate([2 3]) = %v, want nil", err)
	}
	if err := (Shape{}).Validate(); err != nil {
		t.Errorf("Validate(scalar) = %v, want nil", err)
	}
	for _, s := range []Shape{{0}, {2, 0}, {-1, 3}} {
		if err := s.Validate(); !errors.Is(err, ErrIncompatibleShape) {
			t.Errorf("Validate(%v) = %v, want ErrIncompatibleShape", s, err)
		}
	}
}

func TestShapeCloneIsIndependent(t *testing.T) {
	s := Shape{2, 3}
	clone := s.Clone()
	clone[0] = 7
	if s[0] != 2 {
		t.Errorf("mutating clone changed the source: %v", s)
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{2, 3, 4}, []int{12, 4, 1}},
		{Shape{5}, []int{1}},
		{Shape{}, []int{}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Fatalf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestShapeBlockProducts(t *testing.T) {
	s := Shape{2, 3, 4}

	tests := []struct {
		dim           int
		before, after int
	}{
		{0, 1, 12},
		{1, 2, 4},
		{2, 6, 1},
	}

	for _, tt := range tests {
		before, after := s.blockProducts(tt.dim)
		if before != tt.before || after != tt.after {
			t.Errorf("blockProducts(%d) = (%d, %d), want (%d, %d)", tt.dim, before, after, tt.before, tt.after)
		}
	}
}
