package recall

import (
	"context"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/index"
	"github.com/rushteam/anirec/pkg/utils"
)

// Content 是基于题材 TF-IDF 的内容召回源（Content-Based Recommendation）。
//
// 仅在协同路径无法服务时使用：物品未参与训练（冷启动）但有元数据。
// 查询行为与 Collaborative 镜像：余弦相似度全量扫描，按分数取 TopK。
type Content struct {
	Index   *index.LexicalIndex
	Catalog core.Catalog

	// TopK 召回的候选数量，默认 50
	TopK int
}

func (r *Content) Name() string {
	return "recall.content"
}

func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Index == nil {
		return nil, core.NewDomainError(core.ModuleLexical, core.ErrorCodeUnavailable, "lexical index not built")
	}
	if rctx == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 50
	}

	neighbors, err := r.Index.Neighbors(rctx.SeedID, topK)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(neighbors))
	for _, nb := range neighbors {
		it := buildItem(r.Catalog, nb.ID, nb.Score)
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
