package configs

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type ENV struct {
	Port     string `envconfig:"APP_PORT" default:":8080"`
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	AppURL   string `envconfig:"APP_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver            string        `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost              string        `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort              string        `envconfig:"DB_PORT" default:"3306"`
	DBUser              string        `envconfig:"DB_USER" default:"root"`
	DBPassword          string        `envconfig:"DB_PASSWORD"`
	DBName              string        `envconfig:"DB_NAME" default:"wishcrate"`
	DBMaxOpenConns      int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns      int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxLifetime   time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	DBConnectRetries    int           `envconfig:"DB_CONNECT_RETRIES" default:"10"`
	DBConnectRetryDelay time.Duration `envconfig:"DB_CONNECT_RETRY_DELAY" default:"5s"`

	JWTSecret          string `envconfig:"JWT_SECRET"`
	JWTExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`

	RedisAddr        string        `envconfig:"REDIS_ADDR"`
	RedisPassword    string        `envconfig:"REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	CategoryCacheTTL time.Duration `envconfig:"CATEGORY_CACHE_TTL" default:"15m"`

	MidtransServerKey string `envconfig:"MIDTRANS_SERVER_KEY"`
	MidtransEnv       string `envconfig:"MIDTRANS_ENV" default:"sandbox"`

	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`

	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	var env ENV
	if err := envconfig.Process("", &env); err != nil {
		return ENV{}, err
	}
	return env, nil
}
