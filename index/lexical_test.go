package index

import (
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/anirec/catalog"
	"github.com/rushteam/anirec/core"
)

func TestTokenizeGenre(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  []string
	}{
		{name: "plain list", genre: "Action, Comedy", want: []string{"action", "comedy"}},
		{name: "python list literal", genre: `['Action', 'Sci-Fi']`, want: []string{"action", "sci-fi"}},
		{name: "double quotes", genre: `["Drama"]`, want: []string{"drama"}},
		{name: "empty falls back to unknown", genre: "", want: []string{"unknown"}},
		{name: "blank segments dropped", genre: "Action, , Comedy,", want: []string{"action", "comedy"}},
		{name: "multi-word genre is one token", genre: "Slice of Life", want: []string{"slice of life"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenizeGenre(tt.genre); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeGenre(%q) = %v, want %v", tt.genre, got, tt.want)
			}
		})
	}
}

func TestBuildLexicalEmptyCatalog(t *testing.T) {
	if _, err := BuildLexical(nil); !core.IsInvalidInput(err) {
		t.Errorf("BuildLexical(nil) error = %v, want INVALID_INPUT", err)
	}
	if _, err := BuildLexical(catalog.New(nil)); !core.IsInvalidInput(err) {
		t.Errorf("BuildLexical(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestLexicalNeighbors(t *testing.T) {
	c := catalog.New([]catalog.Row{
		{ID: 1, TitleEnglish: "Alpha", Genre: "Action, Comedy"},
		{ID: 2, TitleEnglish: "Beta", Genre: `['Action', 'Comedy']`},
		{ID: 3, TitleEnglish: "Gamma", Genre: "Drama"},
	})
	idx, err := BuildLexical(c)
	if err != nil {
		t.Fatalf("BuildLexical() error = %v", err)
	}

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
	if idx.VocabSize() != 3 {
		t.Errorf("VocabSize() = %d, want 3", idx.VocabSize())
	}
	if !idx.Has(2) || idx.Has(99) {
		t.Errorf("Has(2) = %v, Has(99) = %v, want true/false", idx.Has(2), idx.Has(99))
	}

	got, err := idx.Neighbors(1, 10)
	if err != nil {
		t.Fatalf("Neighbors(1) error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Neighbors(1) returned %d items, want 3", len(got))
	}
	// 1 与 2 分词后词项完全一致，归一化后余弦为 1；3 无共同词项，余弦为 0
	if got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Errorf("Neighbors(1) order = [%d %d %d], want [1 2 3]", got[0].ID, got[1].ID, got[2].ID)
	}
	if math.Abs(got[1].Score-1) > 1e-9 {
		t.Errorf("cosine(1, 2) = %v, want 1", got[1].Score)
	}
	if math.Abs(got[2].Score) > 1e-9 {
		t.Errorf("cosine(1, 3) = %v, want 0", got[2].Score)
	}

	if _, err := idx.Neighbors(99, 10); !core.IsNotFound(err) {
		t.Errorf("Neighbors(99) error = %v, want NOT_FOUND", err)
	}
	var nilIndex *LexicalIndex
	if _, err := nilIndex.Neighbors(1, 10); !core.IsUnavailable(err) {
		t.Errorf("nil index Neighbors error = %v, want UNAVAILABLE", err)
	}
}
