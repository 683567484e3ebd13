package rerank

import (
	"context"
	"sort"
	"strings"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/franchise"
	"github.com/rushteam/anirec/pipeline"
	"github.com/rushteam/anirec/pkg/utils"
)

// FranchiseDedup 是系列去重节点：按归一化系列 key 分组，
// 每组只保留分数最高的一个候选，输出按分数降序重排。
//
// 一个系列重播五季也只占一个推荐位；分数相同时保留先出现的
// （输入已按分数降序，先出现即原始分更高，平局事实上稳定）。
type FranchiseDedup struct{}

func (n *FranchiseDedup) Name() string {
	return "rerank.franchise"
}

func (n *FranchiseDedup) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *FranchiseDedup) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	best := make(map[string]*core.Item, len(items))
	order := make([]string, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}
		key := franchise.Normalize(strings.ToLower(item.Title))

		old, seen := best[key]
		if !seen {
			best[key] = item
			order = append(order, key)
			continue
		}
		if item.Score > old.Score {
			item.PutLabel("franchise_key", utils.Label{Value: key, Source: "rerank"})
			best[key] = item
		}
	}

	out := make([]*core.Item, 0, len(best))
	for _, key := range order {
		out = append(out, best[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
