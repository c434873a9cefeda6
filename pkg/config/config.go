package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	Receipt  ReceiptConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

type JWTConfig struct {
	SecretKey     string
	TokenDuration string // e.g. "24h"
}

type LogConfig struct {
	Level      string
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Format     string // json or text
}

type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // hours
}

// ReceiptConfig controls generated receipt numbers.
type ReceiptConfig struct {
	Prefix   string
	KostName string
}

// WhatsAppConfig carries the default automation settings. Operators can
// override the templates through the settings API; these are the values the
// service falls back to when nothing is stored.
type WhatsAppConfig struct {
	AutoConfirmPayment  bool
	AutoReminderArrears bool
	AutoBilling         bool
	ReminderDaysBefore  int
	PaymentTemplate     string
	ArrearsTemplate     string
	BillingTemplate     string
}

var (
	globalConfig *Config
	once         sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		var err error
		globalConfig, err = LoadConfig()
		if err != nil {
			panic("Failed to load config: " + err.Error())
		}
	})
	return globalConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return defaultValue
}

func getEnvAsStringArray(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Mode: getEnv("SERVER_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "antieq_wisma_bill"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "awbill:cache"),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET_KEY", "default-secret-change-me"),
			TokenDuration: getEnv("JWT_TOKEN_DURATION", "24h"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 30),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
			Format:     getEnv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvAsStringArray("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowMethods:     getEnvAsStringArray("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			AllowHeaders:     getEnvAsStringArray("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"}),
			ExposeHeaders:    getEnvAsStringArray("CORS_EXPOSE_HEADERS", []string{"Content-Length", "Content-Type"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 12),
		},
		Receipt: ReceiptConfig{
			Prefix:   getEnv("RECEIPT_PREFIX", "AW"),
			KostName: getEnv("KOST_NAME", "ANTIEQ WISMA KOST"),
		},
		WhatsApp: WhatsAppConfig{
			AutoConfirmPayment:  getEnvAsBool("WA_AUTO_CONFIRM_PAYMENT", true),
			AutoReminderArrears: getEnvAsBool("WA_AUTO_REMINDER_ARREARS", true),
			AutoBilling:         getEnvAsBool("WA_AUTO_BILLING", false),
			ReminderDaysBefore:  getEnvAsInt("WA_REMINDER_DAYS_BEFORE", 3),
			PaymentTemplate:     getEnv("WA_PAYMENT_TEMPLATE", "Halo {nama}, pembayaran sewa kamar {kamar} untuk periode {periode} sebesar {jumlah} telah kami terima. Kwitansi: {kwitansi}. Terima kasih - ANTIEQ WISMA KOST"),
			ArrearsTemplate:     getEnv("WA_ARREARS_TEMPLATE", "Halo {nama}, ini adalah pengingat pembayaran sewa kamar {kamar} di ANTIEQ WISMA KOST. Tunggakan Anda saat ini {tunggakan}. Mohon segera melakukan pembayaran. Terima kasih."),
			BillingTemplate:     getEnv("WA_BILLING_TEMPLATE", "Halo {nama}, tagihan sewa kamar {kamar} untuk bulan {bulan} sebesar {jumlah} sudah jatuh tempo. Mohon segera melakukan pembayaran. Terima kasih - ANTIEQ WISMA KOST"),
		},
	}

	return config, nil
}
