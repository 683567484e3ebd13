// Package search 提供标题的精确/子串检索，与相似度排序无关。
// 启动时基于 Catalog 一次性构建，之后只读。
package search

import (
	"strings"

	"github.com/rushteam/anirec/core"
)

// Result 是一条检索结果。
type Result struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type indexEntry struct {
	title string // 小写化的索引标题
	id    int64
}

// Index 是双层标题索引：英文标题优先，原文（罗马字）标题兜底。
// 同一层内先精确命中，再子串命中。
type Index struct {
	catalog core.Catalog
	english []indexEntry
	native  []indexEntry
}

// Build 基于 Catalog 构建标题索引。
// 只有真正携带英文标题的物品进入英文层（回退标题不算），
// 原文标题全部进入原文层。
func Build(c core.Catalog) *Index {
	idx := &Index{catalog: c}
	for _, id := range c.IDs() {
		meta, ok := c.Lookup(id)
		if !ok {
			continue
		}

		english := strings.ToLower(strings.TrimSpace(meta.Title))
		native := strings.ToLower(strings.TrimSpace(meta.TitleNative))

		if english != "" && english != native {
			idx.english = append(idx.english, indexEntry{title: english, id: id})
		}
		if native != "" {
			idx.native = append(idx.native, indexEntry{title: native, id: id})
		}
	}
	return idx
}

// Search 检索标题。空查询返回空结果；limit <= 0 时取默认值 5。
// 命中顺序：英文精确 → 英文子串 → 原文精确 → 原文子串，按 ID 去重。
func (idx *Index) Search(query string, limit int) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Result{}
	}
	if limit <= 0 {
		limit = 5
	}

	results := make([]Result, 0, limit)
	seen := make(map[int64]struct{}, limit)

	add := func(id int64) bool {
		if _, dup := seen[id]; dup {
			return len(results) < limit
		}
		seen[id] = struct{}{}
		results = append(results, Result{ID: id, Title: core.TitleOf(idx.catalog, id)})
		return len(results) < limit
	}

	for _, tier := range [][]indexEntry{idx.english, idx.native} {
		// 精确命中优先
		for _, e := range tier {
			if e.title == query {
				if !add(e.id) {
					return results
				}
			}
		}
		for _, e := range tier {
			if strings.Contains(e.title, query) && e.title != query {
				if !add(e.id) {
					return results
				}
			}
		}
	}

	return results
}
