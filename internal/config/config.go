package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Port    string        `yaml:"port"`
	Monitor MonitorConfig `yaml:"monitor"`
	Sensor  SensorConfig  `yaml:"sensor"`
	Storage StorageConfig `yaml:"storage"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	TLS     TLSConfig     `yaml:"tls"`
	Log     LogConfig     `yaml:"log"`
}

// MonitorConfig holds threshold and rate limiter settings
type MonitorConfig struct {
	DarkLux     float64       `yaml:"dark_lux"`
	BrightLux   float64       `yaml:"bright_lux"`
	MinInterval time.Duration `yaml:"min_interval"`
	Enabled     bool          `yaml:"enabled"`
}

// SensorConfig selects and tunes the light sensor
type SensorConfig struct {
	Type         string        `yaml:"type"` // "mock" | "cycle"
	PollInterval time.Duration `yaml:"poll_interval"`
	BaseLux      float64       `yaml:"base_lux"`
	VariationLux float64       `yaml:"variation_lux"`
	CycleMinLux  float64       `yaml:"cycle_min_lux"`
	CycleMaxLux  float64       `yaml:"cycle_max_lux"`
	CyclePeriod  time.Duration `yaml:"cycle_period"`
}

// StorageConfig selects the event repository
type StorageConfig struct {
	Type      string        `yaml:"type"` // "memory" | "sqlite"
	DBPath    string        `yaml:"db_path"`
	Retention time.Duration `yaml:"retention"`
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topic_prefix"`
	PublishRaw  bool   `yaml:"publish_raw"`
}

// TLSConfig holds mTLS file paths; TLS is off when Cert is empty
type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
	CA   string `yaml:"ca"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" | "json"
}

// Defaults returns a Config with sensible defaults
func Defaults() Config {
	return Config{
		Port: "50051",
		Monitor: MonitorConfig{
			DarkLux:     45.0,
			BrightLux:   100.0,
			MinInterval: 200 * time.Millisecond,
			Enabled:     true,
		},
		Sensor: SensorConfig{
			Type:         "mock",
			PollInterval: 50 * time.Millisecond,
			BaseLux:      500.0, // indoor lighting
			VariationLux: 100.0,
			CycleMinLux:  5.0,
			CycleMaxLux:  400.0,
			CyclePeriod:  time.Minute,
		},
		Storage: StorageConfig{
			Type:      "memory",
			DBPath:    "./ambient-light.db",
			Retention: 30 * 24 * time.Hour,
		},
		MQTT: MQTTConfig{
			ClientID:    "ambient-light-service",
			TopicPrefix: "plant-monitor/ambient-light",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file at path, then overlays environment variables.
// If path is empty, only defaults + env vars are used.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values the service cannot run with.
// Threshold ordering is deliberately not checked.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: port is required")
	}
	if c.Monitor.MinInterval < 0 {
		return fmt.Errorf("config: monitor.min_interval must not be negative")
	}
	if c.Sensor.PollInterval <= 0 {
		return fmt.Errorf("config: sensor.poll_interval must be positive")
	}
	switch c.Sensor.Type {
	case "mock", "cycle":
	default:
		return fmt.Errorf("config: unknown sensor.type %q", c.Sensor.Type)
	}
	switch c.Storage.Type {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unknown storage.type %q", c.Storage.Type)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("config: mqtt.broker is required when mqtt is enabled")
	}
	if c.TLS.Cert != "" && (c.TLS.Key == "" || c.TLS.CA == "") {
		return fmt.Errorf("config: tls.key and tls.ca are required with tls.cert")
	}
	return nil
}

// applyEnv overlays environment variables on top of the config.
// Env vars take precedence over YAML values.
func applyEnv(cfg *Config) error {
	var err error

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			*dst = parseBool(v)
		}
	}
	setFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" && err == nil {
			f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if perr != nil {
				err = fmt.Errorf("config: %s: %w", key, perr)
				return
			}
			*dst = f
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" && err == nil {
			d, perr := time.ParseDuration(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("config: %s: %w", key, perr)
				return
			}
			*dst = d
		}
	}

	setString("PORT", &cfg.Port)

	setFloat("DARK_LUX", &cfg.Monitor.DarkLux)
	setFloat("BRIGHT_LUX", &cfg.Monitor.BrightLux)
	setDuration("MIN_INTERVAL", &cfg.Monitor.MinInterval)
	setBool("MONITOR_ENABLED", &cfg.Monitor.Enabled)

	setString("SENSOR_TYPE", &cfg.Sensor.Type)
	setDuration("POLL_INTERVAL", &cfg.Sensor.PollInterval)

	setString("REPO_TYPE", &cfg.Storage.Type)
	setString("DB_PATH", &cfg.Storage.DBPath)
	setDuration("RETENTION", &cfg.Storage.Retention)

	setBool("MQTT_ENABLED", &cfg.MQTT.Enabled)
	setString("MQTT_BROKER", &cfg.MQTT.Broker)
	setString("MQTT_CLIENT_ID", &cfg.MQTT.ClientID)
	setString("MQTT_USERNAME", &cfg.MQTT.Username)
	setString("MQTT_PASSWORD", &cfg.MQTT.Password)
	setString("MQTT_TOPIC_PREFIX", &cfg.MQTT.TopicPrefix)
	setBool("MQTT_PUBLISH_RAW", &cfg.MQTT.PublishRaw)

	setString("TLS_CERT", &cfg.TLS.Cert)
	setString("TLS_KEY", &cfg.TLS.Key)
	setString("TLS_CA", &cfg.TLS.CA)

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	return err
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	b, _ := strconv.ParseBool(s)
	return b
}
