package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/anirec/pipeline"
)

// App 是服务级配置。
type App struct {
	// Listen 是 HTTP 监听地址
	Listen string `yaml:"listen"`

	// Metadata 是元数据 CSV 文件路径
	Metadata string `yaml:"metadata"`

	// Model 指定隐向量模型产物的来源（本地文件或 Redis 二选一）
	Model ModelSource `yaml:"model"`

	// CORS 跨域配置
	CORS CORS `yaml:"cors"`

	// Nodes 是引擎的附加节点（表达式过滤、黑名单等），经注册表构建
	Nodes []pipeline.NodeConfig `yaml:"nodes"`
}

// ModelSource 是模型产物来源。Path 非空时读本地文件，否则读 Redis。
type ModelSource struct {
	Path  string      `yaml:"path"`
	Redis RedisSource `yaml:"redis"`
}

// RedisSource 是 Redis 形态的产物来源：离线训练任务发布，服务启动拉取。
type RedisSource struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
	Key  string `yaml:"key"`
}

// CORS 是跨域配置；AllowedOrigins 为空时放行所有来源（前端本地开发场景）。
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadApp 从 YAML 文件加载服务配置并填充默认值。
func LoadApp(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var app App
	if err := yaml.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	app.applyDefaults()

	if app.Metadata == "" {
		return nil, fmt.Errorf("config: metadata csv path is required")
	}
	if app.Model.Path == "" && app.Model.Redis.Addr == "" {
		return nil, fmt.Errorf("config: model source is required (model.path or model.redis.addr)")
	}
	return &app, nil
}

func (a *App) applyDefaults() {
	if a.Listen == "" {
		a.Listen = ":8000"
	}
	if a.Model.Redis.Addr != "" && a.Model.Redis.Key == "" {
		a.Model.Redis.Key = "anirec:model"
	}
}
