package config

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Veraticus/cnis-flow/internal/common"
)

// Config is the complete application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Report      ReportConfig      `mapstructure:"report"`
	Calculation CalculationConfig `mapstructure:"calculation"`
	Parser      ParserConfig      `mapstructure:"parser"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text console json"`
}

// DatabaseConfig locates the SQLite database of saved imports.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ParserConfig tunes the CNIS parser.
type ParserConfig struct {
	HeaderLimit int `mapstructure:"header_limit" validate:"gte=0"`
}

// ReportConfig sets report defaults.
type ReportConfig struct {
	Format    string `mapstructure:"format" validate:"oneof=pdf xlsx json"`
	OutputDir string `mapstructure:"output_dir"`
}

// CalculationConfig sets calculation defaults.
type CalculationConfig struct {
	Gender string `mapstructure:"gender" validate:"omitempty,oneof=male female"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("database.path", filepath.Join(Dir(), "cnis.db"))
	v.SetDefault("parser.header_limit", 500)
	v.SetDefault("report.format", "pdf")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("calculation.gender", "male")
}

// Load reads the configuration held by v, applies defaults and validates it.
// Paths are returned expanded.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Report.OutputDir = ExpandPath(cfg.Report.OutputDir)
	return &cfg, nil
}
