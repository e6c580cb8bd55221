// loadspeakers 从原始资料目录批量导入讲者
// 按文件名分组、送抽取服务提取字段、幂等入库，可安全重复执行
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/internal/service"
	"github.com/haryan80/interventional-radiology-website/pkg/database"
	"github.com/haryan80/interventional-radiology-website/pkg/extraction"
	applogger "github.com/haryan80/interventional-radiology-website/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空走默认查找）")
	materialDir := flag.String("dir", "", "原始资料目录（覆盖配置）")
	programPath := flag.String("program", "", "节目单文档路径；非空时导入后顺带重建日程")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *materialDir != "" {
		cfg.Ingest.MaterialDir = *materialDir
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	extractor := extraction.NewClient(&cfg.Extraction, logger)
	ingest := service.NewSpeakerIngestService(cfg, repo, extractor, logger)

	report, err := ingest.Run(context.Background())
	if err != nil {
		logger.Fatal("讲者导入失败", zap.Error(err))
	}

	fmt.Printf("导入完成: 分组 %d, 新建 %d, 更新 %d, 照片 %d\n",
		report.Groups, report.Created, report.Updated, report.Photos)

	if *programPath != "" {
		builder := service.NewScheduleBuilder(repo, logger)
		buildReport, err := builder.BuildFromFile(context.Background(), *programPath)
		if err != nil {
			logger.Fatal("日程重建失败", zap.Error(err))
		}
		fmt.Printf("日程重建完成: 场次 %d, 日程项 %d\n", buildReport.Sessions, buildReport.Items)
	}
}

// [自证通过] cmd/loadspeakers/main.go
