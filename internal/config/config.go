package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"` // MAILERKEY
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Storage struct {
		Type          string `yaml:"type"`      // local, s3
		BasePath      string `yaml:"base_path"` // For local storage
		BaseURL       string `yaml:"base_url"`  // Public URL base
		Bucket        string `yaml:"bucket"`
		Region        string `yaml:"region"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		Endpoint      string `yaml:"endpoint"` // custom S3-compatible endpoint
		PresignExpiry int    `yaml:"presign_expiry_minutes"`
	} `yaml:"storage"`

	FrontendURL string `yaml:"frontend_url"`

	FirstEditorEmail    string `yaml:"first_editor_email"`
	FirstEditorPassword string `yaml:"first_editor_password"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию.
// Если заданы переменные окружения БД (docker/CI/тесты) - собираем конфиг
// из окружения, иначе читаем config/config.yaml.
func LoadConfig() {
	var cfg Config

	// .env опционален, ошибки игнорируем
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && os.Getenv("DB_HOST") != "" {
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:5432/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"), os.Getenv("DB_NAME"))
	}

	if dbURL == "" {
		log.Println("Загрузка из config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = getEnv("SERVER_ENV", "production")
	cfg.Server.Port, _ = strconv.Atoi(getEnv("PORT", "4000"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 24 * 60

	cfg.Email.SMTPHost = getEnv("SMTP_HOST", "smtp.sendgrid.net")
	cfg.Email.SMTPPort = 587
	cfg.Email.SMTPUsername = getEnv("SMTP_USER", "apikey")
	cfg.Email.SMTPPassword = os.Getenv("MAILERKEY")
	cfg.Email.FromEmail = getEnv("FROM_EMAIL", "noreply@benchracers.com")
	cfg.Email.FromName = "Bench Racers"
	cfg.Email.TemplatesDir = getEnv("TEMPLATES_DIR", "internal/email/templates")

	cfg.Storage.Type = getEnv("STORAGE_TYPE", "s3")
	cfg.Storage.Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.Storage.Region = os.Getenv("AWS_REGION")
	cfg.Storage.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Storage.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = getEnv("STORAGE_BASE_URL", "/api/files")

	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.FirstEditorEmail = os.Getenv("FIRST_EDITOR_EMAIL")
	cfg.FirstEditorPassword = os.Getenv("FIRST_EDITOR_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 60
	}
	if cfg.Storage.PresignExpiry == 0 {
		// Короткоживущие URL для прямой загрузки с клиента
		cfg.Storage.PresignExpiry = 5
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
