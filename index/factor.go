// Package index 提供两套只读的相似度索引：
//
//   - FactorIndex：离线矩阵分解产出的物品隐向量（协同路径）
//   - LexicalIndex：启动时基于题材标签构建的 TF-IDF 稀疏向量（内容路径，冷启动兜底）
//
// 两者都在初始化屏障内构建完成，之后不可变，查询全程无锁。
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/anirec/core"
)

// Scored 是一条带相似度分数的候选 ID。
type Scored struct {
	ID    int64
	Score float64
}

// FactorIndex 是隐向量索引：每个参与过训练的物品对应一条定长稠密向量。
//
// 物品 ID 与稠密下标之间维持一对双射（id→position 与 position→id），
// 构建时校验一致性；向量 L2 范数预先算好，余弦相似度查询只做点积。
type FactorIndex struct {
	dim     int
	ids     []int64       // position -> id
	pos     map[int64]int // id -> position
	vectors [][]float64   // position -> 隐向量
	norms   []float64     // position -> L2 范数
}

// NewFactorIndex 构建隐向量索引并校验双射与维度一致性。
// 校验失败返回 INVALID_INPUT：问题出在离线产物本身，启动时就该失败。
func NewFactorIndex(ids []int64, vectors [][]float64) (*FactorIndex, error) {
	if len(ids) == 0 {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput, "factor: empty id list")
	}
	if len(ids) != len(vectors) {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput,
			fmt.Sprintf("factor: ids/vectors length mismatch: %d vs %d", len(ids), len(vectors)))
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput, "factor: zero-dimensional vectors")
	}

	f := &FactorIndex{
		dim:     dim,
		ids:     make([]int64, len(ids)),
		pos:     make(map[int64]int, len(ids)),
		vectors: vectors,
		norms:   make([]float64, len(ids)),
	}
	copy(f.ids, ids)

	for i, id := range ids {
		if _, dup := f.pos[id]; dup {
			return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput,
				fmt.Sprintf("factor: duplicate id %d breaks id<->position bijection", id))
		}
		f.pos[id] = i

		if len(vectors[i]) != dim {
			return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput,
				fmt.Sprintf("factor: vector %d has dim %d, want %d", i, len(vectors[i]), dim))
		}

		var sum float64
		for _, v := range vectors[i] {
			sum += v * v
		}
		f.norms[i] = math.Sqrt(sum)
	}

	return f, nil
}

// Dim 返回隐向量维度。
func (f *FactorIndex) Dim() int { return f.dim }

// Len 返回索引内的物品数量。
func (f *FactorIndex) Len() int { return len(f.ids) }

// Has 判断物品是否参与过训练（即是否有隐向量）。
func (f *FactorIndex) Has(id int64) bool {
	if f == nil {
		return false
	}
	_, ok := f.pos[id]
	return ok
}

// IndexOf 返回物品的稠密下标。
func (f *FactorIndex) IndexOf(id int64) (int, bool) {
	i, ok := f.pos[id]
	return i, ok
}

// IDAt 返回稠密下标对应的物品 ID。
func (f *FactorIndex) IDAt(position int) (int64, bool) {
	if position < 0 || position >= len(f.ids) {
		return 0, false
	}
	return f.ids[position], true
}

// Vector 返回物品的隐向量；调用方不得修改返回的切片。
func (f *FactorIndex) Vector(id int64) ([]float64, bool) {
	i, ok := f.pos[id]
	if !ok {
		return nil, false
	}
	return f.vectors[i], true
}

// Scores 返回查询物品对索引内全部物品的余弦相似度，按稠密下标排列。
// 全量扫描，O(物品数 × 维度)；在数千物品的规模下可接受。
//
// 错误：索引未加载返回 UNAVAILABLE；id 无隐向量返回 NOT_FOUND。
func (f *FactorIndex) Scores(id int64) ([]float64, error) {
	if f == nil {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeUnavailable, "factor index not loaded")
	}
	qi, ok := f.pos[id]
	if !ok {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeNotFound,
			fmt.Sprintf("item %d not found in factor index", id))
	}

	query := f.vectors[qi]
	queryNorm := f.norms[qi]

	scores := make([]float64, len(f.vectors))
	if queryNorm == 0 {
		return scores, nil
	}

	for i, vec := range f.vectors {
		if f.norms[i] == 0 {
			continue
		}
		var dot float64
		for d := 0; d < f.dim; d++ {
			dot += query[d] * vec[d]
		}
		scores[i] = dot / (queryNorm * f.norms[i])
	}
	return scores, nil
}

// Neighbors 返回与查询物品最相似的 count 个物品（含查询物品本身，由上游过滤）。
// count <= 0 时取默认值 50：调用方通常多取一些，给后续的系列去重留余量。
func (f *FactorIndex) Neighbors(id int64, count int) ([]Scored, error) {
	scores, err := f.Scores(id)
	if err != nil {
		return nil, err
	}
	return topScored(f.ids, scores, count), nil
}

// topScored 把按下标排列的分数向量转为按分数降序的 TopK 列表。
func topScored(ids []int64, scores []float64, count int) []Scored {
	if count <= 0 {
		count = 50
	}

	out := make([]Scored, len(scores))
	for i, s := range scores {
		out[i] = Scored{ID: ids[i], Score: s}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > count {
		out = out[:count]
	}
	return out
}
