package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID      string
	Port           string
	AllowedOrigins []string

	JWTSecret string

	StorageBucket                string
	SignedURLServiceAccountEmail string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string
}

func Load() Config {
	// Best-effort: deployed environments carry real env vars and no .env file.
	_ = godotenv.Load()

	projectID := getenv("GCP_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	port := getenv("PORT", "8080")
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	storageBucket := getenv("STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		ProjectID:                    projectID,
		Port:                         port,
		AllowedOrigins:               allowed,
		JWTSecret:                    getenv("JWT_SECRET", ""),
		StorageBucket:                storageBucket,
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),
		SMTPHost:                     getenv("SMTP_HOST", ""),
		SMTPPort:                     smtpPort,
		SMTPUser:                     getenv("SMTP_USER", ""),
		SMTPPassword:                 getenv("SMTP_PASSWORD", ""),
		MailFrom:                     getenv("MAIL_FROM", ""),
		AdminEmail:                   getenv("ADMIN_NOTIFY_EMAIL", ""),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
