package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"watchlog/internal/config"
	"watchlog/internal/microservices/http-api/models"
)

// DefaultUserID is the user the seed step guarantees to exist.
const DefaultUserID int64 = 1

// Open connects to Postgres through the pgx stdlib driver and hands the pool
// to GORM. Driver errors are translated so duplicate keys surface as
// gorm.ErrDuplicatedKey.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if _, ok := connConfig.RuntimeParams["application_name"]; !ok {
		connConfig.RuntimeParams["application_name"] = "watchlog"
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		// close the pool if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("connected to the database",
		zap.String("host", connConfig.Host),
		zap.String("database", connConfig.Database),
	)
	return db, nil
}

// AutoMigrate creates or updates the five watchlog tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Series{},
		&models.Season{},
		&models.WatchEntry{},
	); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// SeedDefaultUser makes sure user 1 exists. Running it again is a no-op.
func SeedDefaultUser(ctx context.Context, db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, DefaultUserID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup default user: %w", err)
	}

	user = models.User{
		ID:    DefaultUserID,
		Name:  "Demo User",
		Email: "demo@watchlog.local",
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create default user: %w", err)
	}

	// an explicit id does not advance the serial sequence on postgres
	if db.Dialector.Name() == "postgres" {
		if err := db.WithContext(ctx).Exec(
			"SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))",
		).Error; err != nil {
			return nil, fmt.Errorf("sync users sequence: %w", err)
		}
	}
	return &user, nil
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
