package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	Port           string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string

	// Media storage. When MediaUploadURL is set, uploads are relayed to the
	// external media service; otherwise files land in UploadDir and are
	// served from PublicBaseURL under /uploads.
	MediaUploadURL string
	UploadDir      string
	PublicBaseURL  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "blum"),
		Port:           getEnvOrDefault("PORT", "5000"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		TokenTTL:       getDurationEnv("TOKEN_TTL", 12, time.Hour),
		AllowedOrigins: splitEnvList(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
		MediaUploadURL: getEnvOrDefault("MEDIA_UPLOAD_URL", ""),
		UploadDir:      getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:  getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:5000"),
	}
	log.Printf("[config] DB_NAME=%s", AppEnv.DBName)
	log.Printf("[config] PORT=%s", AppEnv.Port)
	if AppEnv.MediaUploadURL != "" {
		log.Printf("[config] media uploads relayed to %s", AppEnv.MediaUploadURL)
	} else {
		log.Printf("[config] media uploads stored in %s", AppEnv.UploadDir)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitEnvList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
