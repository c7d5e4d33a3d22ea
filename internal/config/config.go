package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/NapaConcierge/concierge-api/internal/utils"
)

type Config struct {
	DatabaseURL    string
	LogLevel       string
	ServiceName    string
	Environment    string
	ServerPort     string
	AllowedOrigins []string

	// AdminToken gates the admin surface. Generated at startup when not
	// configured; AdminTokenGenerated tells main to surface it once.
	AdminToken          string
	AdminTokenGenerated bool

	OpenAIAPIKey         string
	CompletionModel      string
	CompletionMaxTokens  int
	CompletionTimeoutSec int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

func LoadConfig() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	// Render-style connection strings use the legacy scheme.
	if strings.HasPrefix(databaseURL, "postgres://") {
		databaseURL = "postgresql://" + strings.TrimPrefix(databaseURL, "postgres://")
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	adminTokenGenerated := false
	if adminToken == "" {
		adminToken = utils.GenerateAdminToken()
		adminTokenGenerated = true
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "concierge-api"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = allowedOrigins[:0]
		for _, origin := range strings.Split(ao, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	completionModel := os.Getenv("COMPLETION_MODEL")
	if completionModel == "" {
		completionModel = "gpt-4o-mini"
	}

	completionMaxTokens := 1024
	if mt := os.Getenv("COMPLETION_MAX_TOKENS"); mt != "" {
		if parsed, err := strconv.Atoi(mt); err == nil {
			completionMaxTokens = parsed
		}
	}

	completionTimeoutSec := 30
	if ts := os.Getenv("COMPLETION_TIMEOUT_SECONDS"); ts != "" {
		if parsed, err := strconv.Atoi(ts); err == nil {
			completionTimeoutSec = parsed
		}
	}

	smtpPort := os.Getenv("SMTP_PORT")
	if smtpPort == "" {
		smtpPort = "587"
	}

	return &Config{
		DatabaseURL:          databaseURL,
		LogLevel:             logLevel,
		ServiceName:          serviceName,
		Environment:          environment,
		ServerPort:           serverPort,
		AllowedOrigins:       allowedOrigins,
		AdminToken:           adminToken,
		AdminTokenGenerated:  adminTokenGenerated,
		OpenAIAPIKey:         openAIKey,
		CompletionModel:      completionModel,
		CompletionMaxTokens:  completionMaxTokens,
		CompletionTimeoutSec: completionTimeoutSec,
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             smtpPort,
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:             os.Getenv("SMTP_FROM"),
	}, nil
}
