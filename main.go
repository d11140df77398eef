// @title Therapy Dashboard API
// @version 1.0
// @description 自闭症 AI 辅助治疗问卷分析看板的后端服务。
// @termsOfService http://swagger.io/terms/

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"
	"therapy_dashboard/internal/app"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件目录")
	dataPath := flag.String("data", "", "覆盖配置中的 CSV 数据路径")
	port := flag.String("port", "", "覆盖配置中的监听端口")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
