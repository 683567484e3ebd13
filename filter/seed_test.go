package filter

import (
	"context"
	"testing"

	"github.com/rushteam/anirec/catalog"
	"github.com/rushteam/anirec/core"
)

func seedCatalog() *catalog.MemoryCatalog {
	return catalog.New([]catalog.Row{
		{ID: 1, TitleEnglish: "Naruto", Genre: "Action"},
		{ID: 2, TitleEnglish: "Naruto: Shippuden", Genre: "Action"},
		{ID: 3, TitleEnglish: "Bleach", Genre: "Action"},
		{ID: 4, TitleEnglish: "Narutopolis", Genre: "Comedy"},
		{ID: 5, Genre: "Comedy"}, // 无标题
	})
}

func candidate(id int64, title string) *core.Item {
	it := core.NewItem(id)
	it.Title = title
	return it
}

func TestSeedFilterSingle(t *testing.T) {
	f := NewSeedFilter(seedCatalog(), []int64{1}, true)
	ctx := context.Background()

	tests := []struct {
		name string
		item *core.Item
		want bool
	}{
		{name: "seed itself by id", item: candidate(1, "Naruto"), want: true},
		{name: "sequel by franchise key", item: candidate(2, "Naruto: Shippuden"), want: true},
		{name: "substring of seed title", item: candidate(4, "Narutopolis"), want: true},
		{name: "unrelated kept", item: candidate(3, "Bleach"), want: false},
		{name: "untitled candidate kept", item: candidate(6, ""), want: false},
		{name: "nil item filtered", item: nil, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(ctx, nil, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%v) = %v, want %v", tt.item, got, tt.want)
			}
		})
	}
}

// 批量路径关闭子串判定：系列 key 不同但互为子串的标题得以保留。
func TestSeedFilterBatchDisablesSubstring(t *testing.T) {
	f := NewSeedFilter(seedCatalog(), []int64{1, 3}, false)
	ctx := context.Background()

	if got, _ := f.ShouldFilter(ctx, nil, candidate(4, "Narutopolis")); got {
		t.Error("batch filter should keep substring-only match Narutopolis")
	}
	if got, _ := f.ShouldFilter(ctx, nil, candidate(2, "Naruto: Shippuden")); !got {
		t.Error("batch filter should still drop franchise-key match Naruto: Shippuden")
	}
	if got, _ := f.ShouldFilter(ctx, nil, candidate(3, "Bleach")); !got {
		t.Error("batch filter should drop seed id 3")
	}
}

// 元数据缺失或空标题的种子只参与 ID 剔除，不得让空串进入子串判定
// （否则空串是所有标题的子串，会清空整个候选集）。
func TestSeedFilterEmptySeedTitleGuard(t *testing.T) {
	f := NewSeedFilter(seedCatalog(), []int64{5, 99}, true)
	ctx := context.Background()

	if len(f.SeedTitles) != 0 {
		t.Fatalf("SeedTitles = %v, want empty", f.SeedTitles)
	}
	if got, _ := f.ShouldFilter(ctx, nil, candidate(3, "Bleach")); got {
		t.Error("unrelated candidate should survive seeds without titles")
	}
	if got, _ := f.ShouldFilter(ctx, nil, candidate(5, "")); !got {
		t.Error("seed id itself should still be dropped")
	}
}
