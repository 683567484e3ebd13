// Package catalog 提供物品元数据的内存实现与加载器。
// 启动屏障内一次性构建，之后只读，可被任意多请求并发访问。
package catalog

import (
	"strings"

	"github.com/rushteam/anirec/core"
)

// Row 是一条待载入的元数据记录。
type Row struct {
	ID           int64
	TitleEnglish string
	TitleRomaji  string
	Genre        string
}

// MemoryCatalog 是 core.Catalog 的内存实现。
// 展示标题优先英文，缺失时回退罗马字；重复 ID 保留首条。
type MemoryCatalog struct {
	items map[int64]core.ItemMeta
	ids   []int64
}

// New 从记录列表构建 MemoryCatalog。
func New(rows []Row) *MemoryCatalog {
	c := &MemoryCatalog{
		items: make(map[int64]core.ItemMeta, len(rows)),
		ids:   make([]int64, 0, len(rows)),
	}
	for _, row := range rows {
		if _, exists := c.items[row.ID]; exists {
			continue // 重复 ID：保留首条
		}

		title := strings.TrimSpace(row.TitleEnglish)
		if title == "" {
			title = strings.TrimSpace(row.TitleRomaji)
		}

		c.items[row.ID] = core.ItemMeta{
			Title:       title,
			TitleNative: strings.TrimSpace(row.TitleRomaji),
			Genre:       strings.TrimSpace(row.Genre),
		}
		c.ids = append(c.ids, row.ID)
	}
	return c
}

// Lookup 实现 core.Catalog 接口。
func (c *MemoryCatalog) Lookup(id int64) (core.ItemMeta, bool) {
	meta, ok := c.items[id]
	return meta, ok
}

// Len 实现 core.Catalog 接口。
func (c *MemoryCatalog) Len() int {
	return len(c.items)
}

// IDs 实现 core.Catalog 接口，返回加载顺序的 ID 列表。
func (c *MemoryCatalog) IDs() []int64 {
	return c.ids
}
