package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	PageURL          string
	Endpoints        Endpoints
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	LogFile          string
}

var AppConfig *Config

func LoadConfig() *Config {
	pageURL := GetEnv("CONNECT4_PAGE_URL", "http://localhost:8000/")
	handshakeTimeoutSec := GetEnvAsInt("CONNECT4_HANDSHAKE_TIMEOUT_SECONDS", 10)
	writeTimeoutSec := GetEnvAsInt("CONNECT4_WRITE_TIMEOUT_SECONDS", 10)
	pingIntervalSec := GetEnvAsInt("CONNECT4_PING_INTERVAL_SECONDS", 30)
	logFile := GetEnv("CONNECT4_LOG_FILE", "")

	// Built-in deployments, then CSV extras, then the optional YAML table
	endpoints := DefaultEndpoints()
	if extras := GetEnv("CONNECT4_ENDPOINTS", ""); extras != "" {
		endpoints.Merge(ParseEndpointList(extras))
	}
	if path := GetEnv("CONNECT4_ENDPOINTS_FILE", ""); path != "" {
		fromFile, err := LoadEndpointsFile(path)
		if err != nil {
			log.Printf("[CONFIG] Could not load endpoints file %s: %v", path, err)
		} else {
			endpoints.Merge(fromFile)
		}
	}

	AppConfig = &Config{
		PageURL:          pageURL,
		Endpoints:        endpoints,
		HandshakeTimeout: time.Duration(handshakeTimeoutSec) * time.Second,
		WriteTimeout:     time.Duration(writeTimeoutSec) * time.Second,
		PingInterval:     time.Duration(pingIntervalSec) * time.Second,
		LogFile:          logFile,
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
