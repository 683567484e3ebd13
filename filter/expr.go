package filter

import (
	"context"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/pkg/dsl"
)

// Expr 是表达式过滤器：命中 CEL 表达式的候选被剔除。
// 用于配置驱动的运营规则，例如按题材或分数阈值筛除候选。
//
// 示例：
//   - `item.genre.contains("Hentai")` → 屏蔽特定题材
//   - `item.score < 0.05` → 丢弃相似度过低的长尾候选
type Expr struct {
	// Expression 是 CEL 表达式，返回 true 表示剔除该候选
	Expression string
}

func (f *Expr) Name() string {
	return "filter.expr"
}

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expression == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expression)
}
