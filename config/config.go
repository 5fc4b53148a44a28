// Package config loads the plugin configuration consumed by the
// synchronizer, the resolver and the streaming proxy. The configuration is
// threaded through as an explicit value, nothing reads it ambiently.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Web compatibility modes controlling whether audio episodes are routed
// through the streaming proxy.
const (
	ModeAuto      = "auto"
	ModeAlwaysOn  = "alwaysOn"
	ModeAlwaysOff = "alwaysOff"
)

// PodcastSource is one configured feed subscription.
type PodcastSource struct {
	URL string `mapstructure:"url"`
	// Name overrides the parsed feed title as the podcast directory name.
	Name    string `mapstructure:"name"`
	Enabled bool   `mapstructure:"enabled"`
}

// Config is the full plugin configuration.
type Config struct {
	Library struct {
		Path               string `mapstructure:"path"`
		PreferredQuality   string `mapstructure:"preferredQuality"`
		MaxEpisodes        int    `mapstructure:"maxEpisodes"`
		DownloadThumbnails bool   `mapstructure:"downloadThumbnails"`
		AutoCleanup        bool   `mapstructure:"autoCleanup"`
		DaysToKeepEpisodes int    `mapstructure:"daysToKeepEpisodes"`
		// WebCompatibilityMode is one of auto, alwaysOn, alwaysOff.
		WebCompatibilityMode string `mapstructure:"webCompatibilityMode"`
	} `mapstructure:"library"`

	Server struct {
		Address string `mapstructure:"address"`
		// BaseURL is the address web clients reach us on, used when
		// formatting stream URLs into pointer files.
		BaseURL    string `mapstructure:"baseUrl"`
		AdminToken string `mapstructure:"adminToken"`
	} `mapstructure:"server"`

	Transcoder struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"transcoder"`

	LogFile string `mapstructure:"logFile"`

	Podcasts []PodcastSource `mapstructure:"podcasts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("library.path", "/var/lib/podlibrary")
	v.SetDefault("library.preferredQuality", "high")
	v.SetDefault("library.maxEpisodes", 50)
	v.SetDefault("library.downloadThumbnails", true)
	v.SetDefault("library.autoCleanup", false)
	v.SetDefault("library.daysToKeepEpisodes", 30)
	v.SetDefault("library.webCompatibilityMode", ModeAuto)
	v.SetDefault("server.address", "0.0.0.0:8060")
	v.SetDefault("server.baseUrl", "http://127.0.0.1:8060")
	v.SetDefault("transcoder.path", "ffmpeg")
	v.SetDefault("logFile", "/var/log/podlibrary/podlibrary.log")
}

// Load reads config.json from the working directory or /etc/podlibrary,
// applying defaults and environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/podlibrary")
	setDefaults(v)
	v.BindEnv("library.path", "PODLIBRARY_PATH")
	v.BindEnv("server.address", "PODLIBRARY_ADDR")
	v.BindEnv("server.adminToken", "PODLIBRARY_ADMIN_TOKEN")
	v.BindEnv("transcoder.path", "PODLIBRARY_FFMPEG")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return unmarshal(v)
}

// LoadFrom reads configuration from an explicit file path. Used by tests and
// the -config flag.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Library.Path == "" {
		return nil, fmt.Errorf("library.path must be set")
	}
	if cfg.Library.MaxEpisodes <= 0 {
		cfg.Library.MaxEpisodes = 50
	}
	return &cfg, nil
}
