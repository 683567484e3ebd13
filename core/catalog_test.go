package core

import "testing"

type stubCatalog map[int64]ItemMeta

func (c stubCatalog) Lookup(id int64) (ItemMeta, bool) {
	meta, ok := c[id]
	return meta, ok
}

func (c stubCatalog) Len() int { return len(c) }

func (c stubCatalog) IDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

func TestTitleOf(t *testing.T) {
	c := stubCatalog{
		1: {Title: "Alpha", Genre: "Action"},
		2: {Genre: "Action"}, // 无标题
	}

	if got := TitleOf(c, 1); got != "Alpha" {
		t.Errorf("TitleOf(1) = %q", got)
	}
	if got := TitleOf(c, 2); got != "Item #2" {
		t.Errorf("TitleOf(2) = %q, want placeholder", got)
	}
	if got := TitleOf(c, 99); got != "Item #99" {
		t.Errorf("TitleOf(99) = %q, want placeholder", got)
	}
	if got := TitleOf(nil, 7); got != "Item #7" {
		t.Errorf("TitleOf(nil, 7) = %q, want placeholder", got)
	}
}

func TestGenreOf(t *testing.T) {
	c := stubCatalog{
		1: {Title: "Alpha", Genre: "Action"},
		2: {Title: "Beta"},
	}

	if got := GenreOf(c, 1); got != "Action" {
		t.Errorf("GenreOf(1) = %q", got)
	}
	if got := GenreOf(c, 2); got != UnknownGenre {
		t.Errorf("GenreOf(2) = %q, want %q", got, UnknownGenre)
	}
	if got := GenreOf(c, 99); got != UnknownGenre {
		t.Errorf("GenreOf(99) = %q, want %q", got, UnknownGenre)
	}
}
