package configs

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql", "":
		cfg := mysqldriver.NewConfig()
		cfg.User = env.DBUser
		cfg.Passwd = env.DBPassword
		cfg.Net = "tcp"
		cfg.Addr = env.DBHost + ":" + env.DBPort
		cfg.DBName = env.DBName
		cfg.ParseTime = true
		cfg.Loc = time.Local
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return mysql.Open(cfg.FormatDSN()), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			env.DBHost, env.DBPort, env.DBUser, env.DBPassword, env.DBName,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(env.DBName), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func GormConfig(level string) *gorm.Config {
	logLevel := gormlogger.Error
	switch level {
	case "debug":
		logLevel = gormlogger.Info
	case "info", "warn":
		logLevel = gormlogger.Warn
	}

	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

func OpenConnection(env ENV, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	maxRetries := env.DBConnectRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := env.DBConnectRetryDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		logger.Info("connecting to database",
			zap.String("driver", env.DBDriver),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
		)

		db, err := gorm.Open(dialector, GormConfig(env.LogLevel))
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(env.DBMaxOpenConns)
					sqlDB.SetMaxIdleConns(env.DBMaxIdleConns)
					sqlDB.SetConnMaxLifetime(env.DBConnMaxLifetime)
					return db, nil
				}
			}
			lastErr = pingErr
			logger.Warn("failed to ping database", zap.Error(pingErr), zap.Duration("retry_in", retryDelay))
		} else {
			lastErr = err
			logger.Warn("failed to open gorm connection", zap.Error(err), zap.Duration("retry_in", retryDelay))
		}

		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", maxRetries, lastErr)
}
