package db

import (
	"fmt"

	"matchmaker/pkg/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect: 설정된 드라이버로 DB 연결
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "mysql":
		return ConnectMySQL(cfg.DSN)
	case "sqlite":
		return ConnectSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported db driver %s", cfg.Driver)
	}
}

// unique 제약 위반을 gorm.ErrDuplicatedKey로 변환하도록 TranslateError 사용
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

// MySQL 테이블은 utf8mb4_bin으로 생성 (문자열 비교를 대소문자/악센트 구분)
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// AutoMigrate 전에 드라이버별 테이블 옵션 적용
func WithTableOptions(conn *gorm.DB) *gorm.DB {
	if conn.Dialector.Name() == "mysql" {
		return conn.Set("gorm:table_options", mysqlTableOptions)
	}
	return conn
}
