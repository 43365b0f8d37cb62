// Package config содержит логику чтения конфигурации магазина urbanaura.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Значения по умолчанию для параметров, задаваемых только окружением.
const (
	DefaultAdminEmail    = "admin@urbanaura.com"
	DefaultAdminPassword = "admin123"
	DefaultAuthSecret    = "urbanaura-secret"
	DefaultWhatsAppPhone = "254701036266"
)

// Config содержит параметры конфигурации магазина urbanaura.
type Config struct {
	RunAddress           string `env:"RUN_ADDRESS"`
	DatabaseURI          string `env:"DATABASE_URI"`
	StoreFile            string `env:"STORE_FILE"`
	PaymentSystemAddress string `env:"PAYMENT_SYSTEM_ADDRESS"`
	AdminEmail           string `env:"ADMIN_EMAIL"`
	AdminPassword        string `env:"ADMIN_PASSWORD"`
	AuthSecret           string `env:"AUTH_SECRET"`
	WhatsAppPhone        string `env:"WHATSAPP_PHONE"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envStoreFile := cfg.StoreFile
	envPaymentAddress := cfg.PaymentSystemAddress

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.StoreFile, "f", "", "path to file-backed store")
	flag.StringVar(&cfg.PaymentSystemAddress, "r", "", "payment system address")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envStoreFile != "" {
		cfg.StoreFile = envStoreFile
	}
	if envPaymentAddress != "" {
		cfg.PaymentSystemAddress = envPaymentAddress
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = DefaultAdminEmail
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = DefaultAdminPassword
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = DefaultAuthSecret
	}
	if cfg.WhatsAppPhone == "" {
		cfg.WhatsAppPhone = DefaultWhatsAppPhone
	}

	return cfg, nil
}
