package filter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/store"
)

// failingFilter 总是报错，用于验证单个过滤器故障不中断链路。
type failingFilter struct{}

func (failingFilter) Name() string { return "filter.failing" }

func (failingFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return false, errors.New("boom")
}

func TestNodeComposition(t *testing.T) {
	node := &Node{Filters: []Filter{
		failingFilter{},
		&Blacklist{ItemIDs: []int64{2}},
	}}

	items := []*core.Item{
		candidate(1, "Alpha"),
		candidate(2, "Beta"),
		nil,
		candidate(3, "Gamma"),
	}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("Process() = %v, want [1 3]", out)
	}

	// 被剔除的候选带上 filtered 标签，Source 指向命中的过滤器
	if label, ok := items[1].GetLabel("filtered"); !ok || label.Source != "filter.blacklist" {
		t.Errorf("filtered label = %v, %v, want source filter.blacklist", label, ok)
	}
}

func TestNodeNoFilters(t *testing.T) {
	node := &Node{}
	items := []*core.Item{candidate(1, "Alpha")}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("Process() without filters changed items: %v", out)
	}
}

func TestBlacklistFromStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	data, _ := json.Marshal([]int64{7, 8})
	if err := s.Set(ctx, "anirec:blacklist", data); err != nil {
		t.Fatal(err)
	}

	f := &Blacklist{Store: s, Key: "anirec:blacklist"}
	if got, err := f.ShouldFilter(ctx, nil, candidate(7, "Seven")); err != nil || !got {
		t.Errorf("ShouldFilter(7) = %v, %v, want true", got, err)
	}
	if got, err := f.ShouldFilter(ctx, nil, candidate(1, "One")); err != nil || got {
		t.Errorf("ShouldFilter(1) = %v, %v, want false", got, err)
	}

	// key 缺失视为空黑名单
	f = &Blacklist{Store: s, Key: "anirec:absent"}
	if got, err := f.ShouldFilter(ctx, nil, candidate(7, "Seven")); err != nil || got {
		t.Errorf("missing key ShouldFilter = %v, %v, want false, nil", got, err)
	}
}

func TestExprFilter(t *testing.T) {
	ctx := context.Background()

	lowScore := candidate(1, "Alpha")
	lowScore.Score = 0.01
	lowScore.Genre = "Action"
	highScore := candidate(2, "Beta")
	highScore.Score = 0.9
	highScore.Genre = "Horror"

	tests := []struct {
		name string
		expr string
		item *core.Item
		want bool
	}{
		{name: "score threshold hits", expr: "item.score < 0.05", item: lowScore, want: true},
		{name: "score threshold misses", expr: "item.score < 0.05", item: highScore, want: false},
		{name: "genre match", expr: `item.genre.contains("Horror")`, item: highScore, want: true},
		{name: "empty expression keeps all", expr: "", item: lowScore, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Expr{Expression: tt.expr}
			got, err := f.ShouldFilter(ctx, nil, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}

	f := &Expr{Expression: "item.score +"}
	if _, err := f.ShouldFilter(ctx, nil, lowScore); err == nil {
		t.Error("malformed expression should fail")
	}
}
