// Package anirec 是一个混合相似度推荐服务（Hybrid Similarity Recommender）。
//
// 设计要点：
// - 双路召回：协同（离线矩阵分解隐向量）为主，内容（题材 TF-IDF）兜底冷启动
// - Pipeline-first: 召回之后的处理统一走 Node 链（Filter → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
// - 只读稳态：全部索引在启动屏障内构建，之后无锁并发读
package anirec

import "github.com/rushteam/anirec/pipeline"

// 轻量 facade：便于用户直接 import "anirec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
