package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Weather   WeatherConfig   `yaml:"weather" mapstructure:"weather"`
	Wikipedia WikipediaConfig `yaml:"wikipedia" mapstructure:"wikipedia"`
	Maps      MapsConfig      `yaml:"maps" mapstructure:"maps"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Gateway   GatewayConfig   `yaml:"gateway" mapstructure:"gateway"`
	Location  LocationConfig  `yaml:"location" mapstructure:"location"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Google Places, Geocoding and Geolocation settings.
type GoogleConfig struct {
	PlacesKey          string `yaml:"places_key" mapstructure:"places_key"`
	GeocodeKey         string `yaml:"geocode_key" mapstructure:"geocode_key"`
	PlacesBaseURL      string `yaml:"places_base_url" mapstructure:"places_base_url"`
	GeocodeBaseURL     string `yaml:"geocode_base_url" mapstructure:"geocode_base_url"`
	GeolocationBaseURL string `yaml:"geolocation_base_url" mapstructure:"geolocation_base_url"`
}

// GeocodingKey returns the geocoding credential, falling back to the Places key.
func (g GoogleConfig) GeocodingKey() string {
	if g.GeocodeKey != "" {
		return g.GeocodeKey
	}
	return g.PlacesKey
}

// WeatherConfig holds OpenWeatherMap settings.
type WeatherConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// WikipediaConfig holds MediaWiki API settings.
type WikipediaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// MapsConfig holds the map-rendering identifier handed to front ends.
type MapsConfig struct {
	MapID string `yaml:"map_id" mapstructure:"map_id"`
}

// ServerConfig configures the gateway HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// GatewayConfig tells clients where the gateway listens.
type GatewayConfig struct {
	URL         string `yaml:"url" mapstructure:"url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// FallbackLocation is the default position used when geolocation fails.
type FallbackLocation struct {
	Lat     float64 `yaml:"lat" mapstructure:"lat"`
	Lng     float64 `yaml:"lng" mapstructure:"lng"`
	City    string  `yaml:"city" mapstructure:"city"`
	Country string  `yaml:"country" mapstructure:"country"`
}

// LocationConfig configures the location resolver.
type LocationConfig struct {
	Fallback    FallbackLocation `yaml:"fallback" mapstructure:"fallback"`
	TimeoutSecs int              `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Provider    string           `yaml:"provider" mapstructure:"provider"`
}

// SearchConfig configures search behaviour.
type SearchConfig struct {
	DefaultQuery        string `yaml:"default_query" mapstructure:"default_query"`
	AutocompleteRadiusM int    `yaml:"autocomplete_radius_m" mapstructure:"autocomplete_radius_m"`
	NearbyRadiusM       int    `yaml:"nearby_radius_m" mapstructure:"nearby_radius_m"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ZITTYZOOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only sees keys viper already knows about.
	for _, k := range []string{"google.places_key", "google.geocode_key", "weather.key", "maps.map_id"} {
		_ = v.BindEnv(k)
	}

	// Defaults
	v.SetDefault("google.places_base_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.geocode_base_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("google.geolocation_base_url", "https://www.googleapis.com/geolocation/v1/geolocate")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("wikipedia.base_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("gateway.url", "http://localhost:8080")
	v.SetDefault("gateway.timeout_secs", 15)
	v.SetDefault("location.fallback.lat", -26.2041)
	v.SetDefault("location.fallback.lng", 28.0473)
	v.SetDefault("location.fallback.city", "Johannesburg")
	v.SetDefault("location.fallback.country", "South Africa")
	v.SetDefault("location.timeout_secs", 10)
	v.SetDefault("location.provider", "google")
	v.SetDefault("search.default_query", "Restaurants")
	v.SetDefault("search.autocomplete_radius_m", 50000)
	v.SetDefault("search.nearby_radius_m", 3000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a command mode depends on are present.
// Modes: "serve" runs the gateway, "client" talks to a running gateway.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		// Missing provider keys fail only the routes that need them.
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	case "client":
		if c.Gateway.URL == "" {
			errs = append(errs, "gateway.url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Location.TimeoutSecs <= 0 {
		errs = append(errs, "location.timeout_secs must be > 0")
	}
	if c.Location.Fallback.Lat < -90 || c.Location.Fallback.Lat > 90 ||
		c.Location.Fallback.Lng < -180 || c.Location.Fallback.Lng > 180 {
		errs = append(errs, "location.fallback coordinates out of range")
	}
	if c.Search.NearbyRadiusM <= 0 || c.Search.AutocompleteRadiusM <= 0 {
		errs = append(errs, "search radii must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
