package config

import (
	"os"
	"strings"
)

func Addr() string {
	if port, ok := os.LookupEnv("APP_PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// AllowedOrigins returns the comma-separated CORS allow-list, or nil
// to allow every origin.
func AllowedOrigins() []string {
	raw, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS")
	if !ok || raw == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
