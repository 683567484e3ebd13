package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const metadataCSV = `ID,Title_Romaji,Title_English,Genres,Extra
1,Shingeki no Kyojin,Attack on Titan,"['Action', 'Drama']",ignored
2,Naruto,,"Action",
garbage,Broken,Broken,Action,
3,Kimetsu no Yaiba,Demon Slayer
1,Duplicate,Duplicate,Comedy,
`

func TestReadCSV(t *testing.T) {
	c, err := ReadCSV(strings.NewReader(metadataCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (dirty row skipped, duplicate kept first)", c.Len())
	}

	meta, ok := c.Lookup(1)
	if !ok {
		t.Fatal("Lookup(1) missing")
	}
	if meta.Title != "Attack on Titan" {
		t.Errorf("Title = %q, want english title", meta.Title)
	}
	if meta.TitleNative != "Shingeki no Kyojin" {
		t.Errorf("TitleNative = %q", meta.TitleNative)
	}
	if meta.Genre != `['Action', 'Drama']` {
		t.Errorf("Genre = %q", meta.Genre)
	}

	// 英文标题缺失时展示标题回退罗马字
	meta, _ = c.Lookup(2)
	if meta.Title != "Naruto" {
		t.Errorf("fallback Title = %q, want %q", meta.Title, "Naruto")
	}

	// 行尾列缺失按空值处理
	meta, ok = c.Lookup(3)
	if !ok || meta.Title != "Demon Slayer" || meta.Genre != "" {
		t.Errorf("Lookup(3) = %+v, %v", meta, ok)
	}

	if got := c.IDs(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("IDs() = %v, want load order [1 2 3]", got)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("ID,Genres\n1,Action\n")); err == nil {
		t.Error("ReadCSV() without title columns should fail")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.csv")
	if err := os.WriteFile(path, []byte(metadataCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("LoadCSV() on missing file should fail")
	}
}
