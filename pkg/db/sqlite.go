package db

import (
	"errors"

	applog "matchmaker/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectSQLite: 로컬 개발/테스트용 SQLite 연결
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		applog.Logger.Error().Err(err).Str("path", path).Msg("❌ Failed to open SQLite")
		return nil, err
	}

	// in-memory DB는 연결마다 별도 DB이므로 단일 연결로 고정
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	applog.Logger.Info().Str("path", path).Msg("✅ Connected to SQLite")
	return db, nil
}
