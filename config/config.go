package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env    string `env:"ENV" envDefault:"development"`
	Port   string `env:"PORT" envDefault:"5000"`
	LogDir string `env:"LOG_DIR" envDefault:"logs"`

	DB        Database  `envPrefix:"DB_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Razorpay  Razorpay  `envPrefix:"RAZORPAY_"`
	SMTP      SMTP      `envPrefix:"SMTP_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	Realtime  Realtime  `envPrefix:"REALTIME_"`
	Admin     Admin     `envPrefix:"ADMIN_"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"cocomart"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN builds the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWT struct {
	Secret string        `env:"SECRET,required"`
	TTL    time.Duration `env:"TTL" envDefault:"720h"`
}

type Razorpay struct {
	KeyID     string `env:"KEY_ID"`
	KeySecret string `env:"KEY_SECRET"`
	Currency  string `env:"CURRENCY" envDefault:"INR"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Redis is only used to bridge notifications between instances; an empty
// Addr keeps fan-out in process.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	Channel  string `env:"CHANNEL" envDefault:"cocomart:notifications"`
}

type RateLimit struct {
	RPS   float64 `env:"RPS" envDefault:"10"`
	Burst int     `env:"BURST" envDefault:"20"`
}

type Realtime struct {
	// TrustClientJoin accepts the userId/role sent in the join message
	// without a bearer token.
	TrustClientJoin bool `env:"TRUST_CLIENT_JOIN" envDefault:"false"`
	SendBuffer      int  `env:"SEND_BUFFER" envDefault:"16"`
}

// Admin is the account seeded at startup; skipped when Email is empty
type Admin struct {
	Name     string `env:"NAME" envDefault:"Administrator"`
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

// LoadConfig loads configuration from the environment, reading .env first when present
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}
