package index

import (
	"fmt"
	"math"
	"strings"

	"github.com/rushteam/anirec/core"
)

// LexicalIndex 是题材标签的 TF-IDF 稀疏向量索引，覆盖所有有元数据的物品
// （是隐向量覆盖集的超集，这正是冷启动兜底能力的来源）。
//
// 分词规则：题材串小写化、剔除方括号与引号后按逗号切分，
// 每个切出的标签作为一个整体词项（不做子词切分）。
type LexicalIndex struct {
	ids     []int64
	pos     map[int64]int
	vectors []sparseVector // position -> L2 归一化后的 TF-IDF 向量
	vocab   map[string]int // 词项 -> 词表下标
}

// sparseVector 以 词表下标 -> 权重 的形式存放稀疏向量。
type sparseVector map[int]float64

// genreReplacer 剔除题材串中的方括号与引号（导出产物常带 Python 列表字面量痕迹）。
var genreReplacer = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// TokenizeGenre 把题材串切成词项列表。空白与空词项被丢弃。
func TokenizeGenre(genre string) []string {
	if genre == "" {
		genre = core.UnknownGenre
	}
	cleaned := genreReplacer.Replace(strings.ToLower(genre))

	var tokens []string
	for _, part := range strings.Split(cleaned, ",") {
		token := strings.TrimSpace(part)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// BuildLexical 基于 Catalog 一次性构建 TF-IDF 索引。
// 权重 = tf × (ln((1+N)/(1+df)) + 1)，随后对每条向量做 L2 归一化，
// 归一化后两向量的余弦相似度即点积。
func BuildLexical(c core.Catalog) (*LexicalIndex, error) {
	if c == nil || c.Len() == 0 {
		return nil, core.NewDomainError(core.ModuleLexical, core.ErrorCodeInvalidInput, "lexical: empty catalog")
	}

	ids := c.IDs()
	idx := &LexicalIndex{
		ids:     make([]int64, 0, len(ids)),
		pos:     make(map[int64]int, len(ids)),
		vectors: make([]sparseVector, 0, len(ids)),
		vocab:   make(map[string]int),
	}

	// 第一遍：分词、建词表、统计文档频率
	docTokens := make([][]string, 0, len(ids))
	df := make(map[int]int)
	for _, id := range ids {
		meta, _ := c.Lookup(id)
		tokens := TokenizeGenre(meta.Genre)
		docTokens = append(docTokens, tokens)

		idx.pos[id] = len(idx.ids)
		idx.ids = append(idx.ids, id)

		seen := make(map[int]bool, len(tokens))
		for _, token := range tokens {
			ti, ok := idx.vocab[token]
			if !ok {
				ti = len(idx.vocab)
				idx.vocab[token] = ti
			}
			if !seen[ti] {
				seen[ti] = true
				df[ti]++
			}
		}
	}

	// 第二遍：计算 TF-IDF 权重并归一化
	n := float64(len(idx.ids))
	for _, tokens := range docTokens {
		vec := make(sparseVector, len(tokens))
		for _, token := range tokens {
			ti := idx.vocab[token]
			vec[ti]++ // tf：词项出现次数
		}

		var norm float64
		for ti, tf := range vec {
			idf := math.Log((1+n)/(1+float64(df[ti]))) + 1
			w := tf * idf
			vec[ti] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for ti := range vec {
				vec[ti] /= norm
			}
		}
		idx.vectors = append(idx.vectors, vec)
	}

	return idx, nil
}

// Len 返回索引内的物品数量。
func (l *LexicalIndex) Len() int { return len(l.ids) }

// VocabSize 返回词表大小。
func (l *LexicalIndex) VocabSize() int { return len(l.vocab) }

// Has 判断物品是否在索引内（即是否有元数据）。
func (l *LexicalIndex) Has(id int64) bool {
	if l == nil {
		return false
	}
	_, ok := l.pos[id]
	return ok
}

// Neighbors 返回与查询物品题材最相似的 count 个物品（含查询物品本身，由上游过滤）。
// 与 FactorIndex.Neighbors 镜像：全量扫描、按余弦分数降序取 TopK。
//
// 错误：索引未构建返回 UNAVAILABLE；id 无元数据返回 NOT_FOUND。
func (l *LexicalIndex) Neighbors(id int64, count int) ([]Scored, error) {
	if l == nil {
		return nil, core.NewDomainError(core.ModuleLexical, core.ErrorCodeUnavailable, "lexical index not built")
	}
	qi, ok := l.pos[id]
	if !ok {
		return nil, core.NewDomainError(core.ModuleLexical, core.ErrorCodeNotFound,
			fmt.Sprintf("item %d not found in lexical index", id))
	}

	query := l.vectors[qi]
	scores := make([]float64, len(l.vectors))
	for i, vec := range l.vectors {
		scores[i] = sparseDot(query, vec)
	}
	return topScored(l.ids, scores, count), nil
}

// sparseDot 计算两条已归一化稀疏向量的点积（即余弦相似度）。
func sparseDot(a, b sparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for ti, av := range a {
		if bv, ok := b[ti]; ok {
			dot += av * bv
		}
	}
	return dot
}
