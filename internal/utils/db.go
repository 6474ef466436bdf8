package utils

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	db, err := OpenDB(
		V.GetString("database.driver"),
		V.GetString("log.level") == "debug",
	)
	if err != nil {
		panic(err)
	}
	DB = db
}

func OpenDB(driver string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			V.GetString("database.user"),
			V.GetString("database.password"),
			V.GetString("database.host"),
			V.GetInt("database.port"),
			V.GetString("database.db"),
		)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			V.GetString("database.host"),
			V.GetInt("database.port"),
			V.GetString("database.user"),
			V.GetString("database.password"),
			V.GetString("database.db"),
			V.GetString("database.sslmode"),
		)
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(V.GetString("database.file_path"))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if n := V.GetInt("database.max_idle_conns"); n > 0 {
		sqlDB.SetMaxIdleConns(n)
	}
	if n := V.GetInt("database.max_open_conns"); n > 0 {
		sqlDB.SetMaxOpenConns(n)
	}
	if d := V.GetDuration("database.conn_max_lifetime"); d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	}
	return db, nil
}
