// Package config loads runtime settings for the floorplan MCP server from
// environment variables.
//
// Unset or unparseable variables fall back to their defaults, so Load never
// fails. Numeric engine knobs must also be positive to take effect.
//
// # Variables
//
//	FLOORPLAN_MCP_LOG_LEVEL           logrus level name (default "info")
//	FLOORPLAN_MCP_LOG_FORMAT          "text" or "json" (default "text")
//	FLOORPLAN_MCP_CACHE_SIZE          plans kept in memory (default 32)
//	FLOORPLAN_GROUP_THRESHOLD         wall grouping threshold (default 20)
//	FLOORPLAN_ORIENTATION_TOLERANCE   axis-alignment tolerance (default 5)
//	FLOORPLAN_SCALE                   scene scale factor (default 4)
//	FLOORPLAN_MAX_SEGMENTS            segment budget per request (default 5000)
//	FLOORPLAN_INDEX_THRESHOLD         R-tree switch-over count (default 64)
package config

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
	"github.com/ironsheep/floorplan-mcp/internal/plancache"
)

// Config holds the server settings.
type Config struct {
	Logging struct {
		Level  string
		Format string
	}
	CacheSize int
	Engine    struct {
		GroupThreshold       float64
		OrientationTolerance float64
		Scale                float64
		MaxSegments          int
		IndexThreshold       int
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{}

	cfg.Logging.Level = getEnv("FLOORPLAN_MCP_LOG_LEVEL", "info")
	cfg.Logging.Format = strings.ToLower(getEnv("FLOORPLAN_MCP_LOG_FORMAT", "text"))

	cfg.CacheSize = getEnvInt("FLOORPLAN_MCP_CACHE_SIZE", plancache.DefaultCapacity)

	cfg.Engine.GroupThreshold = getEnvFloat("FLOORPLAN_GROUP_THRESHOLD", floorplan.DefaultGroupThreshold)
	cfg.Engine.OrientationTolerance = getEnvFloat("FLOORPLAN_ORIENTATION_TOLERANCE", floorplan.DefaultOrientationTolerance)
	cfg.Engine.Scale = getEnvFloat("FLOORPLAN_SCALE", floorplan.DefaultScale)
	cfg.Engine.MaxSegments = getEnvInt("FLOORPLAN_MAX_SEGMENTS", floorplan.DefaultMaxSegments)
	cfg.Engine.IndexThreshold = getEnvInt("FLOORPLAN_INDEX_THRESHOLD", floorplan.DefaultIndexThreshold)

	return cfg
}

// EngineParams converts the engine settings to floorplan.Params. Opening
// size bands always use the stock values.
func (c *Config) EngineParams() floorplan.Params {
	p := floorplan.DefaultParams()
	p.GroupThreshold = c.Engine.GroupThreshold
	p.OrientationTolerance = c.Engine.OrientationTolerance
	p.Scale = c.Engine.Scale
	p.MaxSegments = c.Engine.MaxSegments
	p.IndexThreshold = c.Engine.IndexThreshold
	return p
}

// NewLogger builds a logger writing to w. The server speaks JSON-RPC on
// stdout, so callers pass os.Stderr.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return logger
}

// getEnv returns the variable's value or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns a positive integer variable or defaultValue.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat returns a positive, finite float variable or defaultValue.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil && f > 0 && f < 1e308 {
			return f
		}
	}
	return defaultValue
}
