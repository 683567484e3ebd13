package recall

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/index"
	"github.com/rushteam/anirec/pkg/utils"
)

// Batch 是多种子的聚合召回源：对每个有隐向量的种子取全量相似度向量，
// 并发 fan-out 后按算术平均合并（每个种子等权，不考虑种子邻域质量）。
//
// 与单物品路径的一个刻意差异：隐向量缺失的种子被静默跳过，
// 不做内容兜底；全部种子都缺失时才报 NOT_FOUND。
type Batch struct {
	Index   *index.FactorIndex
	Catalog core.Catalog

	// TopK 聚合后保留的候选数量，默认 100（过滤前的余量）
	TopK int

	// MaxConcurrent 最大并发数（0 表示无限制）
	MaxConcurrent int
}

func (n *Batch) Name() string {
	return "recall.batch"
}

func (n *Batch) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if n.Index == nil {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeUnavailable, "factor index not loaded")
	}
	if rctx == nil {
		return nil, nil
	}
	seeds := rctx.Seeds()
	if len(seeds) == 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "batch recall: empty seed set")
	}

	exclude := make(map[int64]struct{}, len(seeds))
	for _, id := range seeds {
		exclude[id] = struct{}{}
	}

	var (
		mu    sync.Mutex
		acc   = make([]float64, n.Index.Len())
		valid int
		eg, _ = errgroup.WithContext(ctx)
	)

	// 限流：MaxConcurrent > 0 时用带缓冲的信号量
	var sem chan struct{}
	if n.MaxConcurrent > 0 {
		sem = make(chan struct{}, n.MaxConcurrent)
	}

	for _, seed := range seeds {
		id := seed
		eg.Go(func() error {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			scores, err := n.Index.Scores(id)
			if err != nil {
				if core.IsNotFound(err) {
					return nil // 无隐向量的种子静默跳过
				}
				return err
			}

			mu.Lock()
			for i, s := range scores {
				acc[i] += s
			}
			valid++
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if valid == 0 {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeNotFound,
			"none of the provided items found in factor index")
	}

	// 算术平均 + 剔除种子自身，按均值取 TopK
	type scoredItem struct {
		id    int64
		score float64
	}
	scores := make([]scoredItem, 0, len(acc))
	for i, sum := range acc {
		id, ok := n.Index.IDAt(i)
		if !ok {
			continue
		}
		if _, isSeed := exclude[id]; isSeed {
			continue
		}
		scores = append(scores, scoredItem{id: id, score: sum / float64(valid)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	topK := n.TopK
	if topK <= 0 {
		topK = 100
	}
	if len(scores) > topK {
		scores = scores[:topK]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		it := buildItem(n.Catalog, s.id, s.score)
		it.PutLabel("recall_source", utils.Label{Value: "batch_collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
