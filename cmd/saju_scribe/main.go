package main

import (
	"flag"
	"log"

	"github.com/go-kratos/kratos/v2"

	"github.com/iWorld-y/saju_scribe/internal/config"
	"github.com/iWorld-y/saju_scribe/internal/engine"
	"github.com/iWorld-y/saju_scribe/internal/logger"
	"github.com/iWorld-y/saju_scribe/internal/refdb"
	"github.com/iWorld-y/saju_scribe/internal/server"
	"github.com/iWorld-y/saju_scribe/internal/service"
	"github.com/iWorld-y/saju_scribe/internal/storage"
)

// flagconf 是配置文件的路径命令行参数
var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	// 3. 预热参考数据缓存；文件损坏视为启动致命错误
	db := refdb.Open(cfg.Data.Dir)
	if _, err := db.Tables(); err != nil {
		logger.Log.Fatalf("参考数据加载失败: %v", err)
	}

	// 4. 可选的报告归档存储
	var store *storage.Storage
	if cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Fatalf("数据库初始化失败: %v", err)
		}
		defer store.Close()
	}

	// 5. 核心引擎与 HTTP 服务
	eng, err := engine.NewEngine(cfg, db, store)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	svc := service.NewSajuService(eng)
	srv := server.NewHTTPServer(cfg.Server, svc)

	app := kratos.New(
		kratos.Name("saju_scribe"),
		kratos.Server(srv),
	)

	logger.Log.Infof("saju_scribe 启动，监听 %s", cfg.Server.Addr)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务退出: %v", err)
	}
}
