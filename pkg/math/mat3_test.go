package math

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestIdentity3(t *testing.T) {
	m := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Identity3[%d][%d] = %f, want %f", i, j, m[i][j], want)
			}
		}
	}
}

func TestFromRows(t *testing.T) {
	m := FromRows(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 4, Y: 5, Z: 6}, r3.Vec{X: 7, Y: 8, Z: 9})
	if got := m.Row(1); got != (r3.Vec{X: 4, Y: 5, Z: 6}) {
		t.Errorf("Row(1) = %v, want (4, 5, 6)", got)
	}
	if m[2][0] != 7 {
		t.Errorf("m[2][0] = %f, want 7", m[2][0])
	}
}

func TestTranspose(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	tr := m.Transpose()
	want := Mat3{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	if tr != want {
		t.Errorf("Transpose() = %v, want %v", tr, want)
	}
	if tr.Transpose() != m {
		t.Error("double transpose should return the original matrix")
	}
}

func TestMulVec(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := m.MulVec(r3.Vec{X: 1, Y: 0, Z: -1})
	want := r3.Vec{X: -2, Y: -2, Z: -2}
	if got != want {
		t.Errorf("MulVec() = %v, want %v", got, want)
	}
}

func TestDet(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		want float64
	}{
		{"identity", Identity3(), 1},
		{"diagonal", Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}, 24},
		{"singular", Mat3{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Det(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Det() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	m := Mat3{{1, -2, 3}, {3, -5, 6}, {7, -7, 9}}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}

	prod := m.Mul(inv)
	id := Identity3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(prod[i][j]-id[i][j]) > 1e-9 {
				t.Errorf("M * M^-1 [%d][%d] = %f, want %f", i, j, prod[i][j], id[i][j])
			}
		}
	}
}

func TestInverseSingular(t *testing.T) {
	singular := []Mat3{
		{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		{},
	}
	for _, m := range singular {
		if _, err := m.Inverse(); !errors.Is(err, ErrSingular) {
			t.Errorf("Inverse(%v) error = %v, want ErrSingular", m, err)
		}
	}
}
