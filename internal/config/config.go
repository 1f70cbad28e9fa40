// Package config loads bridge-cli settings from config.yaml and the environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/bridge-cli/internal/assign"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Assign AssignConfig `yaml:"assign" mapstructure:"assign"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig locates and shapes the bridge table.
type DataConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	HeaderRows int    `yaml:"header_rows" mapstructure:"header_rows"`
	SheetIndex int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	TrimSpace  bool   `yaml:"trim_space" mapstructure:"trim_space"`
}

// AssignConfig configures inspector assignment.
type AssignConfig struct {
	MaxPerInspector int           `yaml:"max_per_inspector" mapstructure:"max_per_inspector"`
	Tiers           []assign.Tier `yaml:"tiers" mapstructure:"tiers"`
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
	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.path", "bridge_data.csv")
	v.SetDefault("data.header_rows", 2)
	v.SetDefault("data.sheet_index", 0)
	v.SetDefault("data.trim_space", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("assign.max_per_inspector", 5)
	v.SetDefault("assign.tiers", defaultTiers())

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

// defaultTiers renders assign.DefaultTiers as plain maps so viper can merge
// it with file values.
func defaultTiers() []map[string]any {
	tiers := assign.DefaultTiers()
	out := make([]map[string]any, len(tiers))
	for i, t := range tiers {
		out[i] = map[string]any{
			"name":      t.Name,
			"radius_km": t.RadiusKM,
			"max_bci":   t.MaxBCI,
		}
	}
	return out
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var problems []string

	if c.Data.Path == "" {
		problems = append(problems, "data.path is required")
	}
	if c.Data.HeaderRows < 0 {
		problems = append(problems, "data.header_rows must be >= 0")
	}
	if c.Data.SheetIndex < 0 {
		problems = append(problems, "data.sheet_index must be >= 0")
	}
	if c.Assign.MaxPerInspector < 0 {
		problems = append(problems, "assign.max_per_inspector must be >= 0")
	}
	if err := assign.ValidateTiers(c.Assign.Tiers); err != nil {
		problems = append(problems, "assign.tiers: "+strings.TrimPrefix(err.Error(), "assign: "))
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
