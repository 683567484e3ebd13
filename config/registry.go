package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/anirec/pipeline"
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
// 各组件通过 Register(typeName, builder) 即可被配置驱动。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回基于当前注册表构建的 NodeFactory，包含所有通过 Register 注册的 Node 类型。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// BuildNodes 用注册表构建一组 NodeConfig；任一类型未注册则返回包含已支持列表的错误。
func BuildNodes(configs []pipeline.NodeConfig) ([]pipeline.Node, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	factory := DefaultFactory()

	nodes := make([]pipeline.Node, 0, len(configs))
	for _, nc := range configs {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %q (supported: %v): %w", nc.Type, SupportedTypes(), err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
