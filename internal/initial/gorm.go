package initial

import (
	"SaDam/internal/config"
	consultEntity "SaDam/internal/modules/consult/domain/entity"
	"SaDam/pkg/zlog"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var GormDB *gorm.DB

func init() {
	conf := config.GetConfig()
	pg := conf.PostgresConfig
	if pg.Host == "" || pg.User == "" {
		zlog.Fatal("postgres 配置缺失，无法启动")
	}
	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DatabaseName, sslMode)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	var err error
	GormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		zlog.Fatal(err.Error())
	}
	// 自动迁移，如果没有建表，会自动创建对应的表
	err = GormDB.AutoMigrate(
		&consultEntity.Character{},
		&consultEntity.Session{},
		&consultEntity.Message{},
		&consultEntity.FortuneResult{},
	)
	if err != nil {
		zlog.Fatal(err.Error())
	}
}
