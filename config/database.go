package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"travelcms/models"
)

var DB *gorm.DB

func (s Settings) postgresDSN() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort, s.DBSSLMode)
}

// OpenDB opens the configured database without migrating it.
func OpenDB(s Settings) (*gorm.DB, error) {
	level := gormlogger.Warn
	if s.Env == "dev" {
		level = gormlogger.Info
	}
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  s.Env == "dev",
			},
		),
	}

	var dialector gorm.Dialector
	switch s.DBDriver {
	case "postgres":
		dialector = postgres.Open(s.postgresDSN())
	case "sqlite":
		dialector = sqlite.Open(s.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", s.DBDriver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if s.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// Migrate creates or updates every catalog table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// ConnectDB opens and migrates the database and stores it in DB.
func ConnectDB(s Settings) error {
	db, err := OpenDB(s)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	DB = db
	log.Printf("Connected to %s database", s.DBDriver)
	return nil
}
