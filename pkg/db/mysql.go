package db

import (
	"errors"

	applog "matchmaker/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectMySQL: MySQL 연결을 설정하고 반환
func ConnectMySQL(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("mysql dsn is empty")
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to connect to MySQL")
		return nil, err
	}

	applog.Logger.Info().Msg("✅ Connected to MySQL")
	return db, nil
}
