package core

import "github.com/rushteam/anirec/pkg/utils"

// Item 是推荐链路中的统一候选结构：元信息、分数、标签。
// 召回阶段产出，过滤/重排阶段就地消费，随请求结束丢弃，不落盘。
// Labels 用于解释与观测；Score 是余弦相似度，用于排序决策。
type Item struct {
	ID     int64
	Title  string
	Genre  string
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 获取候选上的 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	if it.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := it.Labels[key]
	return lbl, ok
}
