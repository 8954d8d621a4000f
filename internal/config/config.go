package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/border-crop-mcp/internal/bordercrop"
)

// Config holds the server defaults for border detection. Tool calls may
// override tolerance per request; the rest applies to every call.
type Config struct {
	// Tolerance is the default maximum intensity deviation from the border
	// color, in [0.01, 0.5].
	Tolerance float64 `yaml:"tolerance"`

	// MinCropSize is the smallest crop height or width to accept, in pixels.
	MinCropSize int `yaml:"min_crop_size"`

	// CornerPatchSize is the side length of the corner patch sampled to pick
	// the border color.
	CornerPatchSize int `yaml:"corner_patch_size"`

	// LenientFallback returns the original image on unexpected detection
	// failures instead of reporting an error.
	LenientFallback bool `yaml:"lenient_fallback"`

	// LogLevel is "debug" or "info".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tolerance:       bordercrop.DefaultTolerance,
		MinCropSize:     bordercrop.DefaultMinSize,
		CornerPatchSize: bordercrop.DefaultCornerSize,
		LenientFallback: false,
		LogLevel:        "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// BORDER_MCP_* environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that all values sit in their documented ranges.
func (c Config) Validate() error {
	if c.Tolerance < bordercrop.MinTolerance || c.Tolerance > bordercrop.MaxTolerance {
		return fmt.Errorf("tolerance %.3f outside [%.2f, %.2f]",
			c.Tolerance, bordercrop.MinTolerance, bordercrop.MaxTolerance)
	}
	if c.MinCropSize < 1 {
		return fmt.Errorf("min_crop_size must be positive, got %d", c.MinCropSize)
	}
	if c.CornerPatchSize < 1 {
		return fmt.Errorf("corner_patch_size must be positive, got %d", c.CornerPatchSize)
	}
	if c.LogLevel != "info" && c.LogLevel != "debug" {
		return fmt.Errorf("log_level must be info or debug, got %q", c.LogLevel)
	}
	return nil
}

// Options converts the configuration into detector options.
func (c Config) Options() bordercrop.Options {
	return bordercrop.Options{
		Tolerance:  float32(c.Tolerance),
		MinSize:    c.MinCropSize,
		CornerSize: c.CornerPatchSize,
		Lenient:    c.LenientFallback,
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BORDER_MCP_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Tolerance = f
		}
	}
	if v := os.Getenv("BORDER_MCP_MIN_CROP_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinCropSize = n
		}
	}
	if v := os.Getenv("BORDER_MCP_LENIENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LenientFallback = b
		}
	}
	if v := os.Getenv("BORDER_MCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
