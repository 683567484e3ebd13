package filter

import (
	"context"
	"strings"

	"github.com/rushteam/anirec/core"
	"github.com/rushteam/anirec/franchise"
)

// SeedFilter 剔除种子自身及种子的续作/前作。
//
// 两条互补的判定（命中任意一条即剔除）：
//  1. 候选的归一化系列 key 命中种子的系列 key；
//  2. 候选与种子的原始小写标题互为子串（单物品查询才启用——
//     批量查询没有唯一的查询标题，只做 key 匹配，与线上行为一致）。
//
// 子串判定在多数情况下与 key 匹配重合，但各自能兜住对方漏掉的 case
// （标题子串能抓到正则级联漏掉的命名，反之亦然），因此两条都保留。
type SeedFilter struct {
	// ExcludeIDs 是要剔除的物品 ID 集合（种子自身）
	ExcludeIDs map[int64]struct{}

	// SeedKeys 是种子标题的归一化系列 key 集合
	SeedKeys map[string]struct{}

	// SeedTitles 是种子的原始小写标题（批量查询置空，关闭子串判定）
	SeedTitles []string
}

// NewSeedFilter 从 Catalog 解析种子标题并构建过滤器。
// withTitles 控制是否启用子串判定（单物品查询 true，批量查询 false）。
// 元数据缺失的种子只参与 ID 剔除，空标题不进入 key/子串判定。
func NewSeedFilter(c core.Catalog, seeds []int64, withTitles bool) *SeedFilter {
	f := &SeedFilter{
		ExcludeIDs: make(map[int64]struct{}, len(seeds)),
		SeedKeys:   make(map[string]struct{}, len(seeds)),
	}
	for _, id := range seeds {
		f.ExcludeIDs[id] = struct{}{}

		meta, ok := c.Lookup(id)
		if !ok || meta.Title == "" {
			continue
		}
		title := strings.ToLower(meta.Title)
		if key := franchise.Normalize(title); key != "" {
			f.SeedKeys[key] = struct{}{}
		}
		if withTitles {
			f.SeedTitles = append(f.SeedTitles, title)
		}
	}
	return f
}

func (f *SeedFilter) Name() string {
	return "filter.seed"
}

func (f *SeedFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 规则 1：种子自身
	if _, ok := f.ExcludeIDs[item.ID]; ok {
		return true, nil
	}

	// 规则 2a：系列 key 命中种子
	title := strings.ToLower(item.Title)
	if key := franchise.Normalize(title); key != "" {
		if _, ok := f.SeedKeys[key]; ok {
			return true, nil
		}
	}

	// 规则 2b：与种子标题互为子串（续作命名常见形态）
	if title != "" {
		for _, seedTitle := range f.SeedTitles {
			if strings.Contains(title, seedTitle) || strings.Contains(seedTitle, title) {
				return true, nil
			}
		}
	}

	return false, nil
}
