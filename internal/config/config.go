package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/kaplack/siget-sub000/internal/calendar"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	Holidays    calendar.Holidays
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "siget.db"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:        getEnv("PORT", "8080"),
		Holidays:    loadHolidays(getEnv("HOLIDAYS", "")),
	}
}

// loadHolidays parses the HOLIDAYS env var, a comma-separated list of
// YYYY-MM-DD dates. Loaded once at startup; the set is immutable afterwards
// and passed explicitly wherever business-day math runs.
func loadHolidays(raw string) calendar.Holidays {
	var dates []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", part)
		if err != nil {
			log.Printf("config: skipping invalid holiday %q", part)
			continue
		}
		dates = append(dates, d)
	}
	return calendar.NewHolidays(dates)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
