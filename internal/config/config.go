// Package config loads runtime configuration for script-mode binaries.
// Rofi owns the script's argument vector (the first argument is the selected
// row or typed text), so configuration comes from the environment only.
package config

import (
	"strconv"
	"strings"
)

// Config captures runtime configuration for one script binary.
type Config struct {
	RofiVersion string
	Logging     Logging
	Session     Session
	Flags       map[string]string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Session struct {
	Stateful bool
	Lifetime bool
	CacheDir string
}

const (
	envRofiVersion = "ROFI_MENU_VERSION"
	envLogFile     = "ROFI_MENU_LOG_FILE"
	envTrace       = "ROFI_MENU_TRACE"
	envStateful    = "ROFI_MENU_STATEFUL"
	envLifetime    = "ROFI_MENU_LIFETIME"
	envCacheDir    = "ROFI_MENU_CACHE_DIR"
)

// LoadEnv parses configuration from os.Environ()-style entries.
func LoadEnv(environ []string) Config {
	env := parseEnv(environ)

	cfg := Config{
		RofiVersion: envOrDefault(env, envRofiVersion, "1.6"),
		Logging: Logging{
			FilePath: envOrDefault(env, envLogFile, ""),
			Trace:    envOrBool(env, envTrace, false),
		},
		Session: Session{
			Stateful: envOrBool(env, envStateful, true),
			Lifetime: envOrBool(env, envLifetime, false),
			CacheDir: envOrDefault(env, envCacheDir, ""),
		},
	}
	cfg.Flags = map[string]string{
		"rofiVersion": cfg.RofiVersion,
		"logFile":     cfg.Logging.FilePath,
		"trace":       strconv.FormatBool(cfg.Logging.Trace),
		"stateful":    strconv.FormatBool(cfg.Session.Stateful),
		"lifetime":    strconv.FormatBool(cfg.Session.Lifetime),
	}
	return cfg
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
