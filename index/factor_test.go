package index

import (
	"math"
	"testing"

	"github.com/rushteam/anirec/core"
)

func TestNewFactorIndexValidation(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int64
		vectors [][]float64
	}{
		{name: "empty ids", ids: nil, vectors: nil},
		{name: "length mismatch", ids: []int64{1, 2}, vectors: [][]float64{{1, 0}}},
		{name: "zero dimension", ids: []int64{1}, vectors: [][]float64{{}}},
		{name: "duplicate id", ids: []int64{1, 1}, vectors: [][]float64{{1, 0}, {0, 1}}},
		{name: "ragged dims", ids: []int64{1, 2}, vectors: [][]float64{{1, 0}, {1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactorIndex(tt.ids, tt.vectors)
			if err == nil {
				t.Fatal("NewFactorIndex() error = nil, want INVALID_INPUT")
			}
			if !core.IsInvalidInput(err) {
				t.Errorf("NewFactorIndex() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestFactorIndexLookups(t *testing.T) {
	f, err := NewFactorIndex(
		[]int64{10, 20, 30},
		[][]float64{{1, 0}, {1, 0}, {0, 1}},
	)
	if err != nil {
		t.Fatalf("NewFactorIndex() error = %v", err)
	}

	if f.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", f.Dim())
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
	if !f.Has(20) || f.Has(99) {
		t.Errorf("Has(20) = %v, Has(99) = %v, want true/false", f.Has(20), f.Has(99))
	}

	i, ok := f.IndexOf(30)
	if !ok || i != 2 {
		t.Errorf("IndexOf(30) = %d, %v, want 2, true", i, ok)
	}
	id, ok := f.IDAt(1)
	if !ok || id != 20 {
		t.Errorf("IDAt(1) = %d, %v, want 20, true", id, ok)
	}
	if _, ok := f.IDAt(3); ok {
		t.Error("IDAt(3) should be out of range")
	}
	vec, ok := f.Vector(10)
	if !ok || len(vec) != 2 || vec[0] != 1 {
		t.Errorf("Vector(10) = %v, %v", vec, ok)
	}
}

func TestFactorIndexScores(t *testing.T) {
	f, err := NewFactorIndex(
		[]int64{10, 20, 30},
		[][]float64{{1, 0}, {1, 0}, {0, 1}},
	)
	if err != nil {
		t.Fatalf("NewFactorIndex() error = %v", err)
	}

	scores, err := f.Scores(10)
	if err != nil {
		t.Fatalf("Scores(10) error = %v", err)
	}
	want := []float64{1, 1, 0}
	for i, w := range want {
		if math.Abs(scores[i]-w) > 1e-12 {
			t.Errorf("Scores(10)[%d] = %v, want %v", i, scores[i], w)
		}
	}

	if _, err := f.Scores(99); !core.IsNotFound(err) {
		t.Errorf("Scores(99) error = %v, want NOT_FOUND", err)
	}

	var nilIndex *FactorIndex
	if _, err := nilIndex.Scores(10); !core.IsUnavailable(err) {
		t.Errorf("nil index Scores error = %v, want UNAVAILABLE", err)
	}
}

func TestFactorIndexNeighbors(t *testing.T) {
	f, err := NewFactorIndex(
		[]int64{10, 20, 30, 40},
		[][]float64{{1, 0}, {0.8, 0.2}, {0, 1}, {1, 0}},
	)
	if err != nil {
		t.Fatalf("NewFactorIndex() error = %v", err)
	}

	got, err := f.Neighbors(10, 10)
	if err != nil {
		t.Fatalf("Neighbors(10) error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Neighbors(10) returned %d items, want 4", len(got))
	}
	// 同分（10 与 40 均为 1.0）保持原始下标顺序
	wantOrder := []int64{10, 40, 20, 30}
	for i, w := range wantOrder {
		if got[i].ID != w {
			t.Errorf("Neighbors(10)[%d].ID = %d, want %d", i, got[i].ID, w)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("Neighbors(10) not sorted descending at %d: %v > %v", i, got[i].Score, got[i-1].Score)
		}
	}

	// count 截断
	top2, err := f.Neighbors(10, 2)
	if err != nil {
		t.Fatalf("Neighbors(10, 2) error = %v", err)
	}
	if len(top2) != 2 {
		t.Errorf("Neighbors(10, 2) returned %d items, want 2", len(top2))
	}
}
