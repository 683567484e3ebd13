// anirec 服务入口：在启动屏障内加载全部资产，完成（或致命失败）之后才开始接收请求。
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/anirec/catalog"
	"github.com/rushteam/anirec/config"
	"github.com/rushteam/anirec/engine"
	"github.com/rushteam/anirec/index"
	"github.com/rushteam/anirec/search"
	"github.com/rushteam/anirec/server"
	"github.com/rushteam/anirec/store"
)

func main() {
	configPath := flag.String("config", "configs/anirec.yaml", "path to service config")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadApp(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	// --- 启动屏障：以下全部成功之前不开监听 ---

	cat, err := catalog.LoadCSV(cfg.Metadata)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Metadata).Msg("load metadata")
	}
	logger.Info().Int("items", cat.Len()).Msg("metadata loaded")

	factor, err := loadFactor(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load model artifact")
	}
	logger.Info().Int("items", factor.Len()).Int("dim", factor.Dim()).Msg("factor index loaded")

	lexical, err := index.BuildLexical(cat)
	if err != nil {
		logger.Fatal().Err(err).Msg("build lexical index")
	}
	logger.Info().Int("items", lexical.Len()).Int("vocab", lexical.VocabSize()).Msg("lexical index built")

	extraNodes, err := config.BuildNodes(cfg.Nodes)
	if err != nil {
		logger.Fatal().Err(err).Msg("build pipeline nodes")
	}

	eng, err := engine.New(cat, factor, lexical, engine.WithNodes(extraNodes...))
	if err != nil {
		logger.Fatal().Err(err).Msg("build engine")
	}

	searchIndex := search.Build(cat)
	logger.Info().Msg("all assets loaded, opening listener")

	// --- 屏障结束，开始服务 ---

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(eng, searchIndex, logger).Router(cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Listen).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("stopped")
}

// loadFactor 按配置加载隐向量产物：本地文件优先，否则从 Redis 拉取。
func loadFactor(cfg *config.App, logger zerolog.Logger) (*index.FactorIndex, error) {
	if cfg.Model.Path != "" {
		return index.LoadArtifact(cfg.Model.Path)
	}

	rs, err := store.NewRedisStore(cfg.Model.Redis.Addr, cfg.Model.Redis.DB)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	logger.Info().Str("addr", cfg.Model.Redis.Addr).Str("key", cfg.Model.Redis.Key).Msg("pulling model artifact from redis")
	return index.LoadArtifactFromStore(context.Background(), rs, cfg.Model.Redis.Key)
}
