package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/truemediaorg/igfetch/instagram"
	"github.com/truemediaorg/igfetch/proxy"
)

type Config struct {
	Instagram InstagramConfig
	Proxy     ProxyConfig

	ListenPort int

	LogLevel  log.Level
	LogFormat LogFormat
}

type InstagramConfig struct {
	GraphURL   url.URL
	DocID      string
	AppID      string
	UserAgent  string
	SecretPath string
}

type ProxyConfig struct {
	DefaultFilename string
	AllowedSchemes  []string
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const defaultListenPort = 8080

type EnvfileKey string

const (
	// Port the HTTP API listens on
	EnvfileKeyListenPort = "LISTEN_PORT"

	// Graph endpoint used to look up posts by shortcode
	EnvfileKeyInstagramGraphURL = "INSTAGRAM_GRAPH_URL"
	// Persisted query ID for the post lookup
	EnvfileKeyInstagramDocID = "INSTAGRAM_DOC_ID"
	// Value of the X-IG-App-ID header
	EnvfileKeyInstagramAppID = "INSTAGRAM_APP_ID"
	// User agent sent with graph requests
	EnvfileKeyInstagramUserAgent = "INSTAGRAM_USER_AGENT"
	// AWS Secrets Manager path where doc and app IDs can be found (optional)
	EnvfileKeyInstagramSecretPath = "INSTAGRAM_SECRETS_PATH"

	// Filename used by the download proxy when none is given
	EnvfileKeyProxyDefaultFilename = "PROXY_DEFAULT_FILENAME"
	// Comma separated URL prefixes the download proxy accepts
	EnvfileKeyProxyAllowedSchemes = "PROXY_ALLOWED_SCHEMES"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
)

// FromEnvfile loads the configuration and exits the process if it is unusable.
func FromEnvfile() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}
	return cfg
}

// Load reads configuration from environment variables, falling back to an
// optional .env file in the working directory and then to defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("dotenv")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, "read .env")
		}
		log.Debug("no .env file found, using environment only")
	}

	graphURL, err := url.Parse(getConfigString(v, EnvfileKeyInstagramGraphURL, instagram.DefaultGraphURL))
	if err != nil {
		return Config{}, errors.Wrap(err, "parse instagram graph URL")
	}
	if graphURL.Scheme != "http" && graphURL.Scheme != "https" {
		return Config{}, errors.Errorf("instagram graph URL must be http or https: %s", graphURL)
	}

	listenPort := getConfigInt(v, EnvfileKeyListenPort)
	if listenPort == 0 {
		listenPort = defaultListenPort
	}
	if listenPort < 0 || listenPort > 65535 {
		return Config{}, errors.Errorf("invalid listen port: %d", listenPort)
	}

	logLevel, err := log.ParseLevel(getConfigString(v, EnvfileKeyLogLevel, ""))
	if err != nil {
		// Default to info level but log a warning
		log.Warnf("unable to parse log level: %v", err)
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(v, EnvfileKeyLogFormat, ""))
	if err != nil {
		// Default to text formatter but log a warning
		log.Warnf("unable to parse log format: %v", err)
		logFormat = LogFormatText
	}

	return Config{
		Instagram: InstagramConfig{
			GraphURL:   *graphURL,
			DocID:      getConfigString(v, EnvfileKeyInstagramDocID, instagram.DefaultDocID),
			AppID:      getConfigString(v, EnvfileKeyInstagramAppID, instagram.DefaultAppID),
			UserAgent:  getConfigString(v, EnvfileKeyInstagramUserAgent, instagram.DefaultUserAgent),
			SecretPath: getConfigString(v, EnvfileKeyInstagramSecretPath, ""),
		},
		Proxy: ProxyConfig{
			DefaultFilename: getConfigString(v, EnvfileKeyProxyDefaultFilename, proxy.DefaultFilename),
			AllowedSchemes:  parseList(getConfigString(v, EnvfileKeyProxyAllowedSchemes, ""), proxy.DefaultAllowedSchemes),
		},
		ListenPort: listenPort,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	}, nil
}

// ConfigureLogging applies the configured level and formatter to the
// standard logrus logger.
func (c Config) ConfigureLogging() {
	log.SetLevel(c.LogLevel)
	switch c.LogFormat {
	case LogFormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

// Settings converts the graph configuration into client settings.
func (c InstagramConfig) Settings() instagram.Settings {
	return instagram.Settings{
		GraphURL:  c.GraphURL,
		DocID:     c.DocID,
		AppID:     c.AppID,
		UserAgent: c.UserAgent,
	}
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

func parseList(raw string, def []string) []string {
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(v *viper.Viper, key string, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = v.GetString(key)
	}
	if value == "" {
		return def
	}
	return value
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(v *viper.Viper, key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return v.GetInt(key)
	}
	value, err := strconv.Atoi(envVarValue)
	if err != nil {
		return 0
	}
	return value
}
