package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Carmen-Shannon/oxy-galaxy/galaxy"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the configuration reads,
// so the "inside-color" key is read from GALAXY_INSIDE_COLOR.
const EnvPrefix = "GALAXY"

// Config keys, shared by flags, environment variables and config files.
const (
	KeyVariant      = "variant"
	KeySeed         = "seed"
	KeyCount        = "count"
	KeySize         = "size"
	KeyRadius       = "radius"
	KeyBranches     = "branches"
	KeySpin         = "spin"
	KeyRandomness   = "randomness"
	KeyPower        = "power"
	KeyColor        = "color"
	KeyInsideColor  = "inside-color"
	KeyOutsideColor = "outside-color"
	KeyWidth        = "width"
	KeyHeight       = "height"
	KeyTitle        = "title"
	KeyVSync        = "vsync"
	KeyWorkers      = "workers"
	KeyProfile      = "profile"
)

// ErrInvalidConfig is returned, wrapped with the offending key, when a value cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// WindowConfig holds the display window settings.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Config is the resolved configuration of the galaxy application.
type Config struct {
	// Variant selects the galaxy preset and its generation strategies.
	Variant galaxy.Variant

	// Params are the initial galaxy parameters: the variant preset with any overrides applied.
	Params galaxy.Parameters

	// Seed makes generation reproducible when non-zero.
	Seed uint64

	Window WindowConfig

	// Workers caps concurrent generations. Zero picks a default from the CPU count.
	Workers int

	// Profile enables periodic frame rate logging.
	Profile bool
}

type loader struct {
	v        *viper.Viper
	file     string
	envFiles []string
	flags    *pflag.FlagSet
}

// BindFlags registers every configuration key as a flag on fs.
// Flag defaults are informational; unset flags never override other sources.
//
// Parameters:
//   - fs: the flag set to register on
func BindFlags(fs *pflag.FlagSet) {
	p := galaxy.PresetClassic()
	fs.String(KeyVariant, galaxy.VariantClassic.String(), "galaxy variant: classic or colored")
	fs.Uint64(KeySeed, 0, "random seed, 0 seeds from entropy")
	fs.Int(KeyCount, p.Count, "number of stars")
	fs.Float32(KeySize, p.Size, "star size")
	fs.Float32(KeyRadius, p.Radius, "galaxy radius")
	fs.Int(KeyBranches, p.Branches, "number of spiral arms")
	fs.Float32(KeySpin, p.Spin, "arm twist per unit radius")
	fs.Float32(KeyRandomness, p.Randomness, "uniform jitter magnitude")
	fs.Float32(KeyPower, p.RandomnessPower, "power jitter exponent")
	fs.String(KeyColor, p.Color.Hex(), "star tint")
	fs.String(KeyInsideColor, p.InsideColor.Hex(), "gradient color at the center")
	fs.String(KeyOutsideColor, p.OutsideColor.Hex(), "gradient color at the rim")
	fs.Int(KeyWidth, 1280, "window width")
	fs.Int(KeyHeight, 720, "window height")
	fs.String(KeyTitle, "Galaxy", "window title prefix")
	fs.Bool(KeyVSync, true, "synchronize presentation with the display")
	fs.Int(KeyWorkers, 0, "generation workers, 0 picks from the CPU count")
	fs.Bool(KeyProfile, false, "log frame rate and heap usage")
}

// Load resolves the configuration from, in decreasing precedence: changed flags, environment
// variables (including any loaded from .env files), the config file, and the variant preset.
//
// Parameters:
//   - options: functional options selecting the sources
//
// Returns:
//   - *Config: the resolved configuration
//   - error: wraps ErrInvalidConfig for unusable values, or the underlying read error
func Load(options ...ConfigBuilderOption) (*Config, error) {
	l := &loader{v: viper.New()}
	for _, opt := range options {
		opt(l)
	}

	if err := loadEnvFiles(l.envFiles); err != nil {
		return nil, err
	}

	v := l.v
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if l.file != "" {
		v.SetConfigFile(l.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", l.file, err)
		}
	}
	if l.flags != nil {
		if err := v.BindPFlags(l.flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	v.SetDefault(KeyVariant, galaxy.VariantClassic.String())
	variant, err := galaxy.ParseVariant(v.GetString(KeyVariant))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyVariant, err)
	}
	setDefaults(v, variant.Preset())

	cfg := &Config{
		Variant: variant,
		Seed:    v.GetUint64(KeySeed),
		Window: WindowConfig{
			Width:  v.GetInt(KeyWidth),
			Height: v.GetInt(KeyHeight),
			Title:  v.GetString(KeyTitle),
			VSync:  v.GetBool(KeyVSync),
		},
		Workers: v.GetInt(KeyWorkers),
		Profile: v.GetBool(KeyProfile),
	}

	cfg.Params = galaxy.Parameters{
		Count:           v.GetInt(KeyCount),
		Size:            float32(v.GetFloat64(KeySize)),
		Radius:          float32(v.GetFloat64(KeyRadius)),
		Branches:        v.GetInt(KeyBranches),
		Spin:            float32(v.GetFloat64(KeySpin)),
		Randomness:      float32(v.GetFloat64(KeyRandomness)),
		RandomnessPower: float32(v.GetFloat64(KeyPower)),
	}
	colors := []struct {
		key string
		dst *colorful.Color
	}{
		{KeyColor, &cfg.Params.Color},
		{KeyInsideColor, &cfg.Params.InsideColor},
		{KeyOutsideColor, &cfg.Params.OutsideColor},
	}
	for _, c := range colors {
		col, err := colorful.Hex(v.GetString(c.key))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, c.key, err)
		}
		*c.dst = col
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, p galaxy.Parameters) {
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyCount, p.Count)
	v.SetDefault(KeySize, p.Size)
	v.SetDefault(KeyRadius, p.Radius)
	v.SetDefault(KeyBranches, p.Branches)
	v.SetDefault(KeySpin, p.Spin)
	v.SetDefault(KeyRandomness, p.Randomness)
	v.SetDefault(KeyPower, p.RandomnessPower)
	v.SetDefault(KeyColor, p.Color.Hex())
	v.SetDefault(KeyInsideColor, p.InsideColor.Hex())
	v.SetDefault(KeyOutsideColor, p.OutsideColor.Hex())
	v.SetDefault(KeyWidth, 1280)
	v.SetDefault(KeyHeight, 720)
	v.SetDefault(KeyTitle, "Galaxy")
	v.SetDefault(KeyVSync, true)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyProfile, false)
}

// loadEnvFiles loads each file into the process environment. Missing files are skipped;
// variables already set are never overridden.
func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %q: %w", path, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidConfig, KeyWorkers, c.Workers)
	}
	return nil
}
