package recall

import (
	"context"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/index"
	"github.com/rushteam/anirec/pkg/utils"
)

// Collaborative 是基于隐向量（离线矩阵分解产物）的召回源。
//
// 核心思想：训练期把用户-物品交互矩阵分解为隐向量，
// 在线只做查表 + 余弦相似度全量扫描。
//
// 工程特征：
//   - 实时性：好（离线训练，在线查表）
//   - 计算复杂度：低（O(物品数 × 维度)）
//   - 冷启动：差（未参与训练的物品无向量，由 Content 兜底）
type Collaborative struct {
	Index   *index.FactorIndex
	Catalog core.Catalog

	// TopK 召回的候选数量。调用方通常多取一些（默认 50），
	// 给后续的种子续作过滤与系列去重留余量。
	TopK int
}

func (r *Collaborative) Name() string {
	return "recall.collaborative"
}

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Index == nil {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeUnavailable, "factor index not loaded")
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
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
