package core

import "fmt"

// ItemMeta 是物品的展示元数据。启动时一次性加载，之后只读。
type ItemMeta struct {
	// Title 是展示标题（优先英文标题，缺失时回退原文标题）
	Title string

	// TitleNative 是原文（罗马字）标题，用于标题检索的次级索引
	TitleNative string

	// Genre 是逗号/方括号分隔的题材标签串，可能为 "Unknown"
	Genre string
}

// Catalog 是物品元数据的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（catalog）实现
//   - 只读：初始化屏障之后不存在写路径，可被任意多请求并发读取
//
// 实现：
//   - catalog.MemoryCatalog 实现此接口
type Catalog interface {
	// Lookup 按 ID 查找元数据；不存在时 ok 为 false
	Lookup(id int64) (meta ItemMeta, ok bool)

	// Len 返回物品数量
	Len() int

	// IDs 返回全部物品 ID（加载顺序，稳定）
	IDs() []int64
}

// UnknownGenre 是缺失题材串的占位值。
const UnknownGenre = "Unknown"

// PlaceholderTitle 返回缺失标题的确定性占位值。
// 候选物品元数据缺失不是错误：用占位值兜底，让稀疏物品仍可参与排序与展示。
func PlaceholderTitle(id int64) string {
	return fmt.Sprintf("Item #%d", id)
}

// TitleOf 返回物品标题，元数据缺失时回退占位值。
func TitleOf(c Catalog, id int64) string {
	if c != nil {
		if meta, ok := c.Lookup(id); ok && meta.Title != "" {
			return meta.Title
		}
	}
	return PlaceholderTitle(id)
}

// GenreOf 返回物品题材串，元数据缺失时回退 UnknownGenre。
func GenreOf(c Catalog, id int64) string {
	if c != nil {
		if meta, ok := c.Lookup(id); ok && meta.Genre != "" {
			return meta.Genre
		}
	}
	return UnknownGenre
}
