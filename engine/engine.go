// Package engine 是混合相似度推荐引擎的编排层。
//
// 分发规则：种子在隐向量索引内走协同路径，否则走内容路径（冷启动兜底）；
// 批量查询只走协同路径，对有效种子的全量相似度向量做算术平均。
// 两条入口共用同一条 过滤 → 系列去重 → TopN 截断 的后置链。
package engine

import (
	"context"
	"fmt"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/filter"
	"github.com/rushteam/anirec/index"
	"github.com/rushteam/anirec/pipeline"
	"github.com/rushteam/anirec/recall"
	"github.com/rushteam/anirec/rerank"
)

// 分发路径标识。结果上的 method 是对调用方的透明契约，不是实现细节。
const (
	MethodCollaborative = "collaborative"
	MethodContentBased  = "content_based"
	MethodBatch         = "batch_collaborative"
)

// 默认返回条数与召回余量。
const (
	DefaultLimit      = 10  // 单物品推荐默认条数
	DefaultBatchLimit = 20  // 批量推荐默认条数
	recallHeadroom    = 50  // 单物品召回余量（给续作过滤/去重留空间）
	batchHeadroom     = 100 // 批量聚合后的候选余量
	maxInputTitles    = 5   // 批量结果附带的种子标题数上限
)

// Recommendation 是一条返回给调用方的推荐。
type Recommendation struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Genre string  `json:"genre"`
	Score float64 `json:"score"`
}

// Result 是一次推荐请求的完整结果。
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Method          string           `json:"method"`
	Message         string           `json:"message"`
	InputTitles     []string         `json:"input_titles,omitempty"`
}

// Engine 是显式构建的不可变上下文对象：启动屏障内构建一次，
// 之后以引用传入每个请求处理器；没有任何环境全局量。
type Engine struct {
	catalog core.Catalog
	factor  *index.FactorIndex
	lexical *index.LexicalIndex

	// extraNodes 是配置驱动的附加节点（表达式过滤、黑名单等），
	// 插在种子过滤与系列去重之间
	extraNodes []pipeline.Node
}

// Option 配置 Engine 的可选行为。
type Option func(*Engine)

// WithNodes 追加配置驱动的 Pipeline 节点。
func WithNodes(nodes ...pipeline.Node) Option {
	return func(e *Engine) {
		e.extraNodes = append(e.extraNodes, nodes...)
	}
}

// New 构建 Engine，并按必备资产清单校验：清单不齐时拒绝构建，
// 就绪门不打开，任何请求都不会被放进来。
func New(c core.Catalog, factor *index.FactorIndex, lexical *index.LexicalIndex, opts ...Option) (*Engine, error) {
	var missing []string
	if c == nil || c.Len() == 0 {
		missing = append(missing, "catalog")
	}
	if factor == nil {
		missing = append(missing, "factor index")
	}
	if lexical == nil {
		missing = append(missing, "lexical index")
	}
	if len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeUnavailable,
			fmt.Sprintf("engine: required assets not loaded: %v", missing))
	}

	e := &Engine{
		catalog: c,
		factor:  factor,
		lexical: lexical,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Catalog 返回引擎持有的元数据目录（供边界层的检索等只读用途）。
func (e *Engine) Catalog() core.Catalog { return e.catalog }

// Recommend 对单个种子物品返回推荐。
//
// 分发规则：种子有隐向量时仅走协同路径，否则仅走内容路径。
// limit <= 0 时取默认值 10。
func (e *Engine) Recommend(ctx context.Context, id int64, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		src     recall.Source
		method  string
		message string
	)
	if e.factor.Has(id) {
		src = &recall.Collaborative{Index: e.factor, Catalog: e.catalog, TopK: recallHeadroom}
		method = MethodCollaborative
		message = "Using Collaborative Filtering (SVD)"
	} else {
		src = &recall.Content{Index: e.lexical, Catalog: e.catalog, TopK: recallHeadroom}
		method = MethodContentBased
		message = "Using Content-Based Filtering (TF-IDF on genres)"
	}

	rctx := &core.RecommendContext{SeedID: id, Limit: limit}
	items, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	// 单物品查询启用标题子串判定
	seedFilter := filter.NewSeedFilter(e.catalog, []int64{id}, true)
	items, err = e.postRecall(seedFilter, limit).Run(ctx, rctx, items)
	if err != nil {
		return nil, err
	}

	return &Result{
		Recommendations: toRecommendations(items),
		Method:          method,
		Message:         message,
	}, nil
}

// RecommendBatch 对一组种子物品返回聚合推荐。
//
// 空种子集是边界层的 INVALID_INPUT；这里同样拒绝，保证直接调用也安全。
// 隐向量缺失的种子被静默跳过（刻意不做内容兜底，与单物品路径不同）；
// 全部种子无效时报 NOT_FOUND。limit <= 0 时取默认值 20。
func (e *Engine) RecommendBatch(ctx context.Context, ids []int64, limit int) (*Result, error) {
	if len(ids) == 0 {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "empty seed set")
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	src := &recall.Batch{Index: e.factor, Catalog: e.catalog, TopK: batchHeadroom}
	rctx := &core.RecommendContext{SeedIDs: ids, Limit: limit}

	items, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}

	// 批量查询没有唯一的查询标题，只做系列 key 匹配
	seedFilter := filter.NewSeedFilter(e.catalog, ids, false)
	items, err = e.postRecall(seedFilter, limit).Run(ctx, rctx, items)
	if err != nil {
		return nil, err
	}

	plural := ""
	if len(ids) > 1 {
		plural = "s"
	}

	return &Result{
		Recommendations: toRecommendations(items),
		Method:          MethodBatch,
		Message:         fmt.Sprintf("Based on %d anime%s in your list", len(ids), plural),
		InputTitles:     e.seedTitles(ids),
	}, nil
}

// postRecall 组装召回之后的统一处理链：
// 种子过滤 → 配置驱动的附加节点 → 系列去重 → TopN。
func (e *Engine) postRecall(seed *filter.SeedFilter, limit int) *pipeline.Pipeline {
	nodes := make([]pipeline.Node, 0, len(e.extraNodes)+3)
	nodes = append(nodes, &filter.Node{Filters: []filter.Filter{seed}})
	nodes = append(nodes, e.extraNodes...)
	nodes = append(nodes, &rerank.FranchiseDedup{}, &rerank.TopN{N: limit})
	return &pipeline.Pipeline{Nodes: nodes}
}

// seedTitles 解析种子的展示标题（只取元数据中存在的，最多 maxInputTitles 条）。
func (e *Engine) seedTitles(ids []int64) []string {
	titles := make([]string, 0, maxInputTitles)
	for _, id := range ids {
		meta, ok := e.catalog.Lookup(id)
		if !ok {
			continue
		}
		title := meta.Title
		if title == "" {
			title = core.PlaceholderTitle(id)
		}
		titles = append(titles, title)
		if len(titles) == maxInputTitles {
			break
		}
	}
	return titles
}

func toRecommendations(items []*core.Item) []Recommendation {
	out := make([]Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, Recommendation{
			ID:    it.ID,
			Title: it.Title,
			Genre: it.Genre,
			Score: it.Score,
		})
	}
	return out
}
