// 手动输出数据集报告脚本
//
// 加载配置中的 CSV 数据集，打印概览以及每个视图各图表的会话均值。
// 用于核对数据文件，无需启动服务。
//
// 用法: go run scripts/dataset_report.go [-config configs]

package main

import (
	"context"
	"flag"
	"log"
	"therapy_dashboard/internal/config"
	"therapy_dashboard/internal/repository"
	"therapy_dashboard/internal/service"
	"therapy_dashboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	scale, _ := cfg.Dashboard.ScaleMap()
	repo := repository.NewSurveyRepository(cfg.Data, scale)
	ds, err := repo.Get(context.Background())
	if err != nil {
		log.Fatalf("数据集加载失败: %v", err)
	}

	summary := service.Summarize(ds.Table)
	logger.Log.Info("Dataset summary",
		zap.String("path", ds.Path),
		zap.Int("records", summary.TotalRecords),
		zap.Int("sessions", summary.Sessions),
		zap.Strings("missingQuestions", summary.MissingQuestions),
	)

	views := service.NewViewService(&cfg.Dashboard)
	for _, view := range service.Views() {
		for i, spec := range views.Charts(view, ds) {
			for _, s := range spec.Series {
				for _, p := range s.Points {
					logger.Log.Info("Trend point",
						zap.String("view", view.ID),
						zap.Int("chart", i),
						zap.String("series", s.Label),
						zap.Float64("session", p.Session),
						zap.Float64("mean", p.Mean),
						zap.Int("count", p.Count),
					)
				}
			}
		}
	}
	log.Println("完成！")
}
