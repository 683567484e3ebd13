// Package franchise 提供系列作品的归一化 key 计算。
//
// 同一系列作品会以大量近似标题反复上架（"X Season 2"、"X: Brotherhood"），
// 一个廉价的归一化 key 让排序层把它们当作同一个候选处理，
// 而不需要构建标题相似度模型。key 只作分组用，不落盘。
package franchise

import (
	"regexp"
	"strings"
)

// stripRules 是有序的剔除规则级联：每条规则的输出作为下一条的输入。
// 顺序有语义：序号/季数规则先行，冒号兜底规则最后。
var stripRules = []*regexp.Regexp{
	regexp.MustCompile(`\s*season\s+\d+`),            // "Season 2"
	regexp.MustCompile(`\s*\d+\s*season`),            // "2 Season"
	regexp.MustCompile(`\s*\d+nd\s*season`),          // "2nd Season"
	regexp.MustCompile(`\s*\d+rd\s*season`),          // "3rd Season"
	regexp.MustCompile(`\s*\d+th\s*season`),          // "4th Season"
	regexp.MustCompile(`\s*final\s*season`),          // "Final Season"
	regexp.MustCompile(`\s*part\s+\d+`),              // "Part 2"
	regexp.MustCompile(`\s*\d+$`),                    // 尾部裸数字 "2"、"3"
	regexp.MustCompile(`\s*:\s*the\s+final\s+season`), // ": The Final Season"
	regexp.MustCompile(`\s*:\s*shippuden`),           // ": Shippuden"
	regexp.MustCompile(`\s*:\s*brotherhood`),         // ": Brotherhood"
	regexp.MustCompile(`\s*:\s*next\s+generations`),  // ": Next Generations"
	regexp.MustCompile(`\s*shippuden`),               // "Shippuden"（独立出现）
	regexp.MustCompile(`\s*brotherhood`),             // "Brotherhood"（独立出现）
	regexp.MustCompile(`\s*next\s+generations`),      // "Next Generations"（独立出现）
	regexp.MustCompile(`\s*:\s*[^:]+$`),              // 尾部 ": 任意副标题"（续作兜底）
}

var spaceRuns = regexp.MustCompile(`\s+`)

// Normalize 把标题归一化为系列 key。
// 确定性、纯函数、永不失败；空输入返回空串。
//
// 冒号兜底规则也可能剔除非续作的正当副标题，且级联不保证幂等；
// 这是已知的权衡，回归测试中以幂等性质做守护。
func Normalize(title string) string {
	if title == "" {
		return ""
	}

	normalized := strings.ToLower(title)
	for _, rule := range stripRules {
		normalized = rule.ReplaceAllString(normalized, "")
	}

	// 去掉残留冒号，压缩空白
	normalized = strings.ReplaceAll(normalized, ":", "")
	normalized = spaceRuns.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
