package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/anirec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选规则 DSL 解释器，使用 CEL (Common Expression Language) 实现。
// 用于配置驱动的候选过滤规则，例如按题材或分数阈值筛除候选。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 字符串：item.genre.contains("Horror")
//   - 逻辑：label.recall_source == "content" && item.score < 0.2
//   - 存在性：label.recall_source != null
//
// 示例：
//   - `item.genre.contains("Hentai")` → 题材包含 "Hentai"
//   - `item.score < 0.05` → 相似度过低的长尾候选
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的 DSL 解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 DSL 表达式，返回布尔结果。
// 空表达式视为恒真。
//
// 注意：CEL 访问不存在的 key 会报错，存在性检查请使用 label.key != null。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	// 构建 label map
	labels := make(map[string]interface{})
	for k, v := range e.item.Labels {
		labels[k] = map[string]interface{}{
			"value":  v.Value,
			"source": v.Source,
		}
	}

	// 构建 item map
	item := map[string]interface{}{
		"id":     e.item.ID,
		"title":  e.item.Title,
		"genre":  e.item.Genre,
		"score":  e.item.Score,
		"labels": labels,
	}

	// 构建 rctx map
	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"seed_id":  e.rctx.SeedID,
			"seed_ids": e.rctx.SeedIDs,
			"limit":    e.rctx.Limit,
			"params":   e.rctx.Params,
		}
	}

	// label.recall_source 直接访问 value，兼容简写语法
	labelAccessor := make(map[string]interface{})
	for k, v := range labels {
		labelAccessor[k] = v.(map[string]interface{})["value"]
	}

	return map[string]interface{}{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}
