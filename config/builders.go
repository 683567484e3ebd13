package config

import (
	"github.com/rushteam/anirec/filter"
	"github.com/rushteam/anirec/pipeline"
	"github.com/rushteam/anirec/pkg/conv"
	"github.com/rushteam/anirec/rerank"
)

// 内置 Node 的 init 注册：引擎的附加节点全部经由此注册表构建。
func init() {
	Register("filter", buildFilterNode)
	Register("rerank.franchise", buildFranchiseNode)
	Register("rerank.topn", buildTopNNode)
}

// buildFilterNode 构建组合过滤节点。
//
// 配置示例：
//
//	type: filter
//	config:
//	  rules:
//	    - item.genre.contains("Hentai")
//	    - item.score < 0.01
//	  blacklist: [431, 2890]
func buildFilterNode(config map[string]interface{}) (pipeline.Node, error) {
	var filters []filter.Filter

	for _, expr := range conv.SliceAnyToString(config["rules"]) {
		if expr == "" {
			continue
		}
		filters = append(filters, &filter.Expr{Expression: expr})
	}

	if ids := conv.SliceAnyToInt64(config["blacklist"]); len(ids) > 0 {
		filters = append(filters, &filter.Blacklist{ItemIDs: ids})
	}

	return &filter.Node{Filters: filters}, nil
}

func buildFranchiseNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rerank.FranchiseDedup{}, nil
}

func buildTopNNode(config map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(config, "n", 0)}, nil
}
