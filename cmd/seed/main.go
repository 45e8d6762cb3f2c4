// seed 写入本地开发用的初始数据：管理员、普通用户、一个分类、一个作者、一本书
package main

import (
	"context"
	"log"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.Initialize(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// 表结构由 seed 自己保证，不依赖 auto_migrate 配置
	cfg.Database.AutoMigrate = true
	db, err := mysql.NewDB(cfg)
	if err != nil {
		logger.Fatal("connect database failed", err, nil)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	seeder := NewSeeder(db, user.NewService(mysql.NewUserRepository(db)))
	res, err := seeder.Run(context.Background())
	if err != nil {
		logger.Fatal("seed failed", err, nil)
	}
	logger.Info("seed finished", map[string]interface{}{
		"users":      res.Users,
		"categories": res.Categories,
		"authors":    res.Authors,
		"books":      res.Books,
	})
}
