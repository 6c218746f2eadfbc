package database

import (
	"fmt"
	"log"

	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if shouldMigrate(cfg) {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := SeedWhitelist(db, cfg.Quiz.Whitelist); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// shouldMigrate 开发模式每次启动都迁移；release 模式表结构由运维管理，
// 只有显式传 -migrate / -migrate-only 才执行
func shouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != "release"
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PhoneWhitelist{},
		&model.Question{},
		&model.ExamSession{},
		&model.ExamQuestion{},
		&model.UserAnswer{},
		&model.UserQuestionStat{},
		&model.ExamResult{},
	)
}

// SeedWhitelist 把配置里的手机号补进白名单表，已存在的跳过
func SeedWhitelist(db *gorm.DB, phones []string) error {
	for _, phone := range phones {
		if phone == "" {
			continue
		}
		var count int64
		if err := db.Model(&model.PhoneWhitelist{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&model.PhoneWhitelist{Phone: phone}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
