package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rushteam/anirec/core"
)

// Artifact 是离线训练任务产出的隐向量模型产物（JSON）。
//
// 训练本身（矩阵分解拟合）不在本仓库内；服务只消费产物：
// 物品 ID 列表与等长的隐向量列表，下标即稠密 position。
type Artifact struct {
	Dim     int         `json:"dim"`
	IDs     []int64     `json:"ids"`
	Vectors [][]float64 `json:"vectors"`
}

// ParseArtifact 解析产物字节流并构建 FactorIndex。
// 声明的 Dim 与向量实际维度不符时视为产物损坏（INVALID_INPUT）。
func ParseArtifact(data []byte) (*FactorIndex, error) {
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput,
			fmt.Sprintf("factor: malformed artifact: %v", err))
	}

	f, err := NewFactorIndex(art.IDs, art.Vectors)
	if err != nil {
		return nil, err
	}
	if art.Dim != 0 && art.Dim != f.Dim() {
		return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeInvalidInput,
			fmt.Sprintf("factor: artifact declares dim %d but vectors have dim %d", art.Dim, f.Dim()))
	}
	return f, nil
}

// LoadArtifact 从本地文件加载模型产物。
func LoadArtifact(path string) (*FactorIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return ParseArtifact(data)
}

// LoadArtifactFromStore 从 Store 加载模型产物。
// 离线训练任务把产物写入 Redis 等共享存储，多副本服务启动时统一读取。
func LoadArtifactFromStore(ctx context.Context, s core.Store, key string) (*FactorIndex, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleFactor, core.ErrorCodeNotFound,
				fmt.Sprintf("model artifact key %q not found in %s store", key, s.Name()))
		}
		return nil, fmt.Errorf("load model artifact from %s store: %w", s.Name(), err)
	}
	return ParseArtifact(data)
}
