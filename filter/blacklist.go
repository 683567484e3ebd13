package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/anirec/core"
)

// Blacklist 是黑名单过滤器，过滤掉运营下架/屏蔽的物品。
type Blacklist struct {
	// ItemIDs 是内存中的黑名单物品 ID 列表
	ItemIDs []int64

	// Store 用于从存储中读取黑名单（可选，JSON int64 数组）
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

func (f *Blacklist) Name() string {
	return "filter.blacklist"
}

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 从内存列表检查
	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		var blacklist []int64
		if err := json.Unmarshal(data, &blacklist); err != nil {
			return false, err
		}
		for _, id := range blacklist {
			if item.ID == id {
				return true, nil
			}
		}
	}

	return false, nil
}
