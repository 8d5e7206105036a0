package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MySQLDSN   string
	RedisURL   string
	Port       string
	EnableSSL  bool
	SSLCert    string
	SSLKey     string
	RateLimit  int           // submissions per window, per key
	RateWindow time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	rate, err := strconv.Atoi(getenv("RATE_LIMIT", "60"))
	if err != nil || rate < 1 {
		rate = 60
	}
	windowSec, err := strconv.Atoi(getenv("RATE_WINDOW", "60"))
	if err != nil || windowSec < 1 {
		windowSec = 60
	}
	return Config{
		MySQLDSN:   getenv("MYSQL_DSN", "casedocket:casedocket@tcp(127.0.0.1:3306)/casedocket?parseTime=true"),
		RedisURL:   getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		Port:       getenv("PORT", "8080"),
		EnableSSL:  getenv("ENABLE_SSL", "false") == "true",
		SSLCert:    os.Getenv("SSL_CERT"),
		SSLKey:     os.Getenv("SSL_KEY"),
		RateLimit:  rate,
		RateWindow: time.Duration(windowSec) * time.Second,
	}
}
