package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DataDir      string
	Channels     []string
	BusinessFile string
	Port         string
	HealthyCAC   float64
	LogLevel     slog.Level
}

func FromEnv() Config {
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	cac := 20.0
	if v := os.Getenv("CAC_HEALTHY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cac = f
		}
	}
	return Config{
		DataDir:      envOr("DATA_DIR", "data"),
		Channels:     splitList(envOr("CHANNELS", "Facebook,Google,TikTok")),
		BusinessFile: envOr("BUSINESS_FILE", "business.csv"),
		Port:         envOr("PORT", "8080"),
		HealthyCAC:   cac,
		LogLevel:     lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
