package core

import "github.com/rushteam/anirec/pkg/utils"

// RecommendContext 承载一次推荐请求的种子与参数，贯穿整个 Pipeline 透传。
//
// 单物品请求填 SeedID；批量请求填 SeedIDs。
// 初始化屏障之后所有索引只读，RecommendContext 是请求内唯一的可变状态。
type RecommendContext struct {
	// SeedID 是单物品请求的种子物品 ID
	SeedID int64

	// SeedIDs 是批量请求的种子物品 ID 集合
	SeedIDs []int64

	// Limit 是期望返回的结果条数（<=0 时由各组件取默认值）
	Limit int

	// Labels 是请求级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（query、device_type 等），供表达式过滤器使用
	Params map[string]any
}

// Seeds 返回本次请求的全部种子 ID（单物品请求视为长度为 1 的集合）。
func (rctx *RecommendContext) Seeds() []int64 {
	if len(rctx.SeedIDs) > 0 {
		return rctx.SeedIDs
	}
	if rctx.SeedID != 0 {
		return []int64{rctx.SeedID}
	}
	return nil
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
