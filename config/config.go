package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that YAML can express as "30s" or "1m", or as
// a bare number of seconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if parsed, err := time.ParseDuration(value.Value); err == nil {
		*d = Duration(parsed)
		return nil
	}
	var seconds int64
	if err := value.Decode(&seconds); err != nil {
		return err
	}
	*d = Duration(time.Duration(seconds) * time.Second)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// AppConfig is the full client configuration, loaded from a YAML file with
// environment variable overrides applied on top.
type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Gateway GatewayConfig `yaml:"gateway" json:"gateway"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
}

type SysConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
}

// BackendConfig points the client at the storefront REST API.
type BackendConfig struct {
	BaseURL string   `yaml:"base_url" json:"base_url"`
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// GatewayConfig carries payment gateway connection settings. Credentials are
// never configured here: they are fetched per store from the backend.
type GatewayConfig struct {
	BaseURL      string   `yaml:"base_url" json:"base_url"`
	Timeout      Duration `yaml:"timeout" json:"timeout"`
	RetryCount   int      `yaml:"retry_count" json:"retry_count"`
	RetryDelay   Duration `yaml:"retry_delay" json:"retry_delay"`
	PollInterval Duration `yaml:"poll_interval" json:"poll_interval"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Workdir:  "/var/tortamaria",
		Location: "America/Sao_Paulo",
	},
	Backend: BackendConfig{
		BaseURL: "https://sivpt-betaapi.onrender.com",
		Timeout: Duration(30 * time.Second),
	},
	Gateway: GatewayConfig{
		BaseURL:      "https://api.mercadopago.com/v1",
		Timeout:      Duration(30 * time.Second),
		RetryCount:   3,
		RetryDelay:   Duration(time.Second),
		PollInterval: Duration(5 * time.Second),
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/tortamaria/tortamaria.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvDuration(name string, val *Duration) {
	if evalue, ok := os.LookupEnv(name); ok {
		if d, err := time.ParseDuration(evalue); err == nil {
			*val = Duration(d)
		}
	}
}

// LoadConfig reads the YAML config at cfile, falling back to defaults when
// the file is absent, then applies TORTAMARIA_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("TORTAMARIA_WORKDIR", &cfg.System.Workdir)
	setEnvValue("TORTAMARIA_LOCATION", &cfg.System.Location)
	setEnvValue("TORTAMARIA_BACKEND_URL", &cfg.Backend.BaseURL)
	setEnvDuration("TORTAMARIA_BACKEND_TIMEOUT", &cfg.Backend.Timeout)
	setEnvValue("TORTAMARIA_GATEWAY_URL", &cfg.Gateway.BaseURL)
	setEnvDuration("TORTAMARIA_GATEWAY_TIMEOUT", &cfg.Gateway.Timeout)
	setEnvValue("TORTAMARIA_LOGGER_MODE", &cfg.Logger.Mode)

	return cfg
}

// StatePath resolves a filename inside the configured workdir.
func (c *AppConfig) StatePath(name string) string {
	return filepath.Join(c.System.Workdir, name)
}

// InitDirs makes sure the workdir exists before anything opens state files.
func (c *AppConfig) InitDirs() error {
	return os.MkdirAll(c.System.Workdir, 0o755)
}
