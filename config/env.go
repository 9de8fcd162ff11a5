package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAPIBaseURL     = "https://portfolioo.uz"
	defaultAppEnv         = "local"
	defaultSessionDriver  = "file"
	defaultSessionFile    = ".sayohat/session.json"
	defaultRedisAddr      = "localhost:6379"
	defaultHTTPTimeout    = "30"
	defaultBreakerEnabled = "false"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads configuration once, merging defaults ← config/app.json ← .env.
// Missing files are not errors; malformed files are.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"API_BASE_URL":    defaultAPIBaseURL,
		"APP_ENV":         defaultAppEnv,
		"SESSION_DRIVER":  defaultSessionDriver,
		"SESSION_FILE":    defaultSessionFile,
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"HTTP_TIMEOUT":    defaultHTTPTimeout,
		"BREAKER_ENABLED": defaultBreakerEnabled,
	}
}

// APIBaseURL is the root of the remote booking API (no trailing slash).
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", defaultAPIBaseURL), "/")
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// SessionDriver selects where the bearer token is persisted: file, redis or memory.
func SessionDriver() string {
	_ = Load()

	driver := strings.ToLower(get("SESSION_DRIVER", defaultSessionDriver))
	switch driver {
	case "file", "redis", "memory":
		return driver
	default:
		return defaultSessionDriver
	}
}

// SessionFile is the token file path, resolved against $HOME when relative.
func SessionFile() string {
	_ = Load()

	path := get("SESSION_FILE", defaultSessionFile)
	if strings.HasPrefix(path, "/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + "/" + path
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// HTTPTimeout is the per-attempt timeout for outbound API calls.
func HTTPTimeout() time.Duration {
	_ = Load()

	secs, err := strconv.Atoi(get("HTTP_TIMEOUT", defaultHTTPTimeout))
	if err != nil || secs <= 0 {
		secs, _ = strconv.Atoi(defaultHTTPTimeout)
	}
	return time.Duration(secs) * time.Second
}

// BreakerEnabled reports whether the upstream circuit breaker is on.
func BreakerEnabled() bool {
	_ = Load()
	return get("BREAKER_ENABLED", defaultBreakerEnabled) == "true"
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and config/app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
