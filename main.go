// @title 在线刷题考试 API
// @version 1.0
// @description 手机号白名单登录、组卷答题与判分的后端服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"quiz_exam_backend/internal/app"
	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/pkg/configwatcher"
	"quiz_exam_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		// 换指针而不是改旧结构体，正在处理请求的读方不受影响；
		// 组卷配额和令牌有效期热生效，端口、限流等需重启
		application.Live.Store(newCfg)
		logger.Log.Info("Config reloaded")
	})

	application.Run()
}
