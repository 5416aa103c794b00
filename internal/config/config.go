// Package config provides layered configuration loading for dropsearch.
// It merges Defaults -> TOML file (optional) -> Environment variables,
// then validates the result. Precedence is lowest to highest in that order.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
)

const envPrefix = "DROPSEARCH_"

// Dropbox holds the OAuth app credentials used for refresh-grant token
// exchange. Immutable after load.
type Dropbox struct {
	AppKey       string `koanf:"app_key" toml:"app_key" validate:"required"`
	AppSecret    string `koanf:"app_secret" toml:"app_secret" validate:"required"`
	RefreshToken string `koanf:"refresh_token" toml:"refresh_token" validate:"required"`
	// TokenURL overrides the provider token endpoint. Empty means the
	// Dropbox default; set it in tests to point at a local server.
	TokenURL string `koanf:"token_url" toml:"token_url" validate:"omitempty,url"`
}

// Config holds the merged runtime configuration for dropsearch.
type Config struct {
	Addr         string        `koanf:"addr" toml:"addr" validate:"required,listen_addr"`
	Root         string        `koanf:"root" toml:"root"`
	Extension    string        `koanf:"extension" toml:"extension" validate:"required,startswith=."`
	IndexPath    string        `koanf:"index_path" toml:"index_path" validate:"required"`
	DBPath       string        `koanf:"db_path" toml:"db_path" validate:"required"`
	SyncOnStart  bool          `koanf:"sync_on_start" toml:"sync_on_start"`
	SyncInterval time.Duration `koanf:"sync_interval" toml:"sync_interval" validate:"min=0"`
	Verbose      bool          `koanf:"verbose" toml:"verbose"`
	Dropbox      Dropbox       `koanf:"dropbox" toml:"dropbox"`
}

// DefaultAppConfig is the baseline configuration before file and environment
// overlays. Dropbox credentials have no default and must be supplied.
var DefaultAppConfig = Config{
	Addr:        ":8080",
	Root:        "",
	Extension:   ".txt",
	IndexPath:   "./data/index.bleve",
	DBPath:      "./data/history.db",
	SyncOnStart: true,
}

// envKeys maps DROPSEARCH_* variable suffixes to koanf key paths. Unknown
// variables under the prefix are ignored.
var envKeys = map[string]string{
	"ADDR":                  "addr",
	"ROOT":                  "root",
	"EXTENSION":             "extension",
	"INDEX_PATH":            "index_path",
	"DB_PATH":               "db_path",
	"SYNC_ON_START":         "sync_on_start",
	"SYNC_INTERVAL":         "sync_interval",
	"VERBOSE":               "verbose",
	"DROPBOX_APP_KEY":       "dropbox.app_key",
	"DROPBOX_APP_SECRET":    "dropbox.app_secret",
	"DROPBOX_REFRESH_TOKEN": "dropbox.refresh_token",
	"DROPBOX_TOKEN_URL":     "dropbox.token_url",
}

// Loader steps are package variables so tests can inject failures.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[strings.TrimPrefix(key, envPrefix)]
			if !ok {
				return "", nil
			}
			return path, value
		},
	}), nil)
}

var registerValidators = func(v *validator.Validate) error {
	return v.RegisterValidation("listen_addr", validListenAddr)
}

// tomlFile is a koanf provider serving a parsed TOML document.
type tomlFile struct{ path string }

func (p tomlFile) ReadBytes() ([]byte, error) {
	return nil, errors.New("tomlFile provider does not support ReadBytes")
}

func (p tomlFile) Read() (map[string]any, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p.path, err)
	}
	return out, nil
}

// Load builds the effective configuration. filePath names an optional TOML
// file; empty means no file overlay. A named file that cannot be read or
// parsed is an error.
func Load(filePath string) (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if filePath != "" {
		if err := k.Load(tomlFile{path: filePath}, nil); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	v := validator.New()
	if err := registerValidators(v); err != nil {
		return nil, fmt.Errorf("registering validators: %w", err)
	}
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validListenAddr accepts host:port listen addresses. The host may be empty
// (":8080"), an IP, or a hostname; the port must be numeric in 1..65535.
func validListenAddr(fl validator.FieldLevel) bool {
	host, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	if strings.TrimSpace(host) != host {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}
