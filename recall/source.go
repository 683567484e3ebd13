package recall

import (
	"context"

	"github.com/rushteam/anirec/core"
)

// Source 表示一个可复用的召回源（协同/内容/批量聚合/...）。
// 每个 Source 消费 RecommendContext 中的种子，产出带分数的候选集。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// buildItem 把一条打分结果包装为候选，元数据缺失用占位值兜底。
func buildItem(c core.Catalog, id int64, score float64) *core.Item {
	it := core.NewItem(id)
	it.Title = core.TitleOf(c, id)
	it.Genre = core.GenreOf(c, id)
	it.Score = score
	return it
}
