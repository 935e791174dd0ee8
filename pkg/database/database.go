package database

import (
	"fmt"
	"log"
	"lrs_insight_backend/internal/config"
	"lrs_insight_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认不迁移，避免线上结构被意外改动
	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Statement{},
			&model.Section{},
			&model.Activity{},
			&model.LearnerProfile{},
		)
		if err != nil {
			return nil, err
		}
	}

	return db, nil
}
