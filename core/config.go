package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string
		WorkDir  string

		SecretKey          []byte
		DataDir            string
		DatabaseURL        string
		FrontendBaseURL    string
		DefaultFromEmail   mail.Address
		StudentEmailDomain string
		SendgridAPIKey     string
		RollbarToken       string

		Server ServerConfig
		Assist AssistConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		JWTExpirationDelta time.Duration
	}

	AssistConfig struct {
		BaseURL string
		APIKey  string
		Model   string
	}
)

// NewConfig loads configuration from defaults, an optional config/.env.<env>
// file and the environment (prefixed with the env name).
func NewConfig(workDir string) *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "StudySync")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "q2w#mk0v7d$3xj(8e&5y!u1rb*4zg^6ncp9s)hft+aoil-)=dz")
	v.SetDefault("dataDir", filepath.Join(workDir, "data"))
	v.SetDefault("databaseUrl", "")
	v.SetDefault("frontendBaseUrl", "http://localhost:8080")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("studentEmailDomain", "students.localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("assistBaseUrl", "https://api.openai.com")
	v.SetDefault("assistApiKey", "")
	v.SetDefault("assistModel", "gpt-4")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:                env,
		Debug:              v.GetBool("debug"),
		TestMode:           testMode,
		AppName:            v.GetString("appName"),
		Build:              v.GetString("build"),
		WorkDir:            workDir,
		SecretKey:          []byte(v.GetString("secretKey")),
		DataDir:            v.GetString("dataDir"),
		DatabaseURL:        v.GetString("databaseUrl"),
		FrontendBaseURL:    v.GetString("frontendBaseUrl"),
		DefaultFromEmail:   mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		StudentEmailDomain: v.GetString("studentEmailDomain"),
		SendgridAPIKey:     v.GetString("sendgridApiKey"),
		RollbarToken:       v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Addr:               v.GetString("serverAddr"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Assist: AssistConfig{
			BaseURL: v.GetString("assistBaseUrl"),
			APIKey:  v.GetString("assistApiKey"),
			Model:   v.GetString("assistModel"),
		},
	}
}
