package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App  AppConfig
	API  APIConfig
	Auth AuthConfig
	Stub StubConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type AuthConfig struct {
	// CredentialFile keeps tokens between CLI runs
	CredentialFile string
}

// StubConfig only matters when running against the embedded stub backend.
type StubConfig struct {
	Port            string
	JWTSecret       string
	JWTExpiryHours  int
	HoldTTLMinutes  int
	SeedAdminEmail  string
	SeedAdminPass   string
	SeedClientEmail string
	SeedClientPass  string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinevers-client")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CREDENTIAL_FILE", ".cinevers-session")
	viper.SetDefault("STUB_PORT", "5000")
	viper.SetDefault("STUB_JWT_SECRET", "dev-only-secret")
	viper.SetDefault("STUB_JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("STUB_HOLD_TTL_MINUTES", 15)
	viper.SetDefault("STUB_ADMIN_EMAIL", "gerente@cinevers.mx")
	viper.SetDefault("STUB_ADMIN_PASS", "gerente123")
	viper.SetDefault("STUB_CLIENT_EMAIL", "cliente@cinevers.mx")
	viper.SetDefault("STUB_CLIENT_PASS", "cliente123")

	if err := viper.ReadInConfig(); err != nil {
		// The CLI must still start without a .env next to it
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL:        viper.GetString("API_BASE_URL"),
			TimeoutSeconds: viper.GetInt("REQUEST_TIMEOUT_SECONDS"),
		},
		Auth: AuthConfig{
			CredentialFile: viper.GetString("CREDENTIAL_FILE"),
		},
		Stub: StubConfig{
			Port:            viper.GetString("STUB_PORT"),
			JWTSecret:       viper.GetString("STUB_JWT_SECRET"),
			JWTExpiryHours:  viper.GetInt("STUB_JWT_EXPIRY_HOURS"),
			HoldTTLMinutes:  viper.GetInt("STUB_HOLD_TTL_MINUTES"),
			SeedAdminEmail:  viper.GetString("STUB_ADMIN_EMAIL"),
			SeedAdminPass:   viper.GetString("STUB_ADMIN_PASS"),
			SeedClientEmail: viper.GetString("STUB_CLIENT_EMAIL"),
			SeedClientPass:  viper.GetString("STUB_CLIENT_PASS"),
		},
	}

	return config, nil
}
