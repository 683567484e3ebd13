package rerank

import (
	"context"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/pipeline"
)

// TopN 是截断节点，在去重/重排之后截取前 N 个候选。
//
// 使用场景：
//   - 单物品推荐默认 Top 10，批量推荐默认 Top 20
//   - 配合 FranchiseDedup 使用：先去重，再截断
type TopN struct {
	// N 要保留的候选数量（Top N）
	// 如果 N <= 0，则返回所有候选（不截断）
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
