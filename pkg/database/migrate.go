package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 迁移脚本嵌入二进制，会议站点单文件部署时无需携带 SQL 目录
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 把会议库 schema 升级到最新版本
// 已在最新版本时静默返回，服务启动与 loadspeakers 导入均会调用
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载嵌入迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	// dirty 说明上次迁移中途失败，需人工介入后重跑
	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("会议库迁移处于 dirty 状态", zap.Uint("version", version))
		return nil
	}
	logger.Info("会议库迁移完成", zap.Uint("version", version))
	return nil
}
