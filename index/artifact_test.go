package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/store"
)

const artifactJSON = `{
	"dim": 2,
	"ids": [1, 2, 3],
	"vectors": [[1, 0], [0, 1], [0.5, 0.5]]
}`

func TestParseArtifact(t *testing.T) {
	f, err := ParseArtifact([]byte(artifactJSON))
	if err != nil {
		t.Fatalf("ParseArtifact() error = %v", err)
	}
	if f.Len() != 3 || f.Dim() != 2 {
		t.Errorf("ParseArtifact() len = %d, dim = %d, want 3, 2", f.Len(), f.Dim())
	}

	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"ids": [1]`},
		{name: "declared dim mismatch", data: `{"dim": 8, "ids": [1], "vectors": [[1, 0]]}`},
		{name: "empty artifact", data: `{"ids": [], "vectors": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArtifact([]byte(tt.data)); !core.IsInvalidInput(err) {
				t.Errorf("ParseArtifact() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(artifactJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("LoadArtifact() error = %v", err)
	}
	if !f.Has(2) {
		t.Error("loaded index missing id 2")
	}

	if _, err := LoadArtifact(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadArtifact() on missing file should fail")
	}
}

func TestLoadArtifactFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Set(ctx, "anirec:model", []byte(artifactJSON)); err != nil {
		t.Fatal(err)
	}

	f, err := LoadArtifactFromStore(ctx, s, "anirec:model")
	if err != nil {
		t.Fatalf("LoadArtifactFromStore() error = %v", err)
	}
	if f.Len() != 3 {
		t.Errorf("loaded index len = %d, want 3", f.Len())
	}

	if _, err := LoadArtifactFromStore(ctx, s, "anirec:absent"); !core.IsNotFound(err) {
		t.Errorf("missing key error = %v, want NOT_FOUND", err)
	}
}
