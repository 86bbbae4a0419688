package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Clinic   ClinicConfig
	Booking  BookingConfig
	JWT      JWTConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TelegramConfig configures the bot transport. AdminIDs is the fixed
// allow-list of Telegram user IDs permitted to open the admin panel.
type TelegramConfig struct {
	BotToken    string
	WebhookPath string
	AdminIDs    []int64
}

// ClinicConfig holds the static texts and contact links shown to users.
type ClinicConfig struct {
	Name       string
	Address    string
	About      string
	WhatsApp   string
	Instagram  string
	CardNumber string
}

// BookingConfig tunes the booking dialogue.
//
// HorizonDays is the number of future days offered for selection.
// OpenHour and CloseHour bound the hourly slot grid, both inclusive.
// RejectDuplicateServices selects the service-name uniqueness policy:
// true rejects a second AddService with the same name, false turns it
// into a no-op returning the existing ID.
type BookingConfig struct {
	HorizonDays             int
	OpenHour                int
	CloseHour               int
	SessionTTL              time.Duration
	StoreTimeout            time.Duration
	RejectDuplicateServices bool
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AdminConfig is the single fixed account for the catalog REST API.
// PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Env-only deployments run without a .env file.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	setDefaults()

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Telegram: TelegramConfig{
			BotToken:    viper.GetString("TELEGRAM_BOT_TOKEN"),
			WebhookPath: viper.GetString("TELEGRAM_WEBHOOK_PATH"),
			AdminIDs:    parseAdminIDs(viper.GetString("TELEGRAM_ADMIN_IDS")),
		},
		Clinic: ClinicConfig{
			Name:       viper.GetString("CLINIC_NAME"),
			Address:    viper.GetString("CLINIC_ADDRESS"),
			About:      viper.GetString("CLINIC_ABOUT"),
			WhatsApp:   viper.GetString("CLINIC_WHATSAPP"),
			Instagram:  viper.GetString("CLINIC_INSTAGRAM"),
			CardNumber: viper.GetString("CLINIC_CARD_NUMBER"),
		},
		Booking: BookingConfig{
			HorizonDays:             viper.GetInt("BOOKING_HORIZON_DAYS"),
			OpenHour:                viper.GetInt("BOOKING_OPEN_HOUR"),
			CloseHour:               viper.GetInt("BOOKING_CLOSE_HOUR"),
			SessionTTL:              viper.GetDuration("BOOKING_SESSION_TTL"),
			StoreTimeout:            viper.GetDuration("BOOKING_STORE_TIMEOUT"),
			RejectDuplicateServices: viper.GetBool("BOOKING_REJECT_DUPLICATE_SERVICES"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetDuration("JWT_ACCESS_EXPIRY"),
		},
		Admin: AdminConfig{
			Username:     viper.GetString("ADMIN_USERNAME"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TELEGRAM_WEBHOOK_PATH", "/webhook/telegram")
	viper.SetDefault("BOOKING_HORIZON_DAYS", 7)
	viper.SetDefault("BOOKING_OPEN_HOUR", 9)
	viper.SetDefault("BOOKING_CLOSE_HOUR", 17)
	viper.SetDefault("BOOKING_SESSION_TTL", "30m")
	viper.SetDefault("BOOKING_STORE_TIMEOUT", "5s")
	viper.SetDefault("BOOKING_REJECT_DUPLICATE_SERVICES", true)
	viper.SetDefault("JWT_ACCESS_EXPIRY", "15m")
}

// parseAdminIDs reads a comma-separated list of Telegram user IDs.
// Malformed entries are skipped rather than failing startup.
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
