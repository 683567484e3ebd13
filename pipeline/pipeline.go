package pipeline

import (
	"context"

	"github.com/rushteam/anirec/core"
)

// Pipeline 是推荐链路的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 单物品与批量查询共用同一条过滤/重排链，保证两条入口的去重语义一致。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
