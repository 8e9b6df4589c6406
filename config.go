package glyphswarm

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default text variants.
const (
	DefaultPrimaryText   = "SHENZHEN"
	DefaultSecondaryText = "深圳"
	DefaultBackground    = "#171717"
)

// Duration is a time.Duration read from TOML strings such as "8s" or "600ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// TextConfig is one displayed text variant.
type TextConfig struct {
	Text string `toml:"text"`
	// Font is an optional TTF/OTF/TTC path. Empty uses the embedded Go Bold,
	// which has no CJK coverage.
	Font string `toml:"font"`
}

// Config holds every tunable of a Swarm.
type Config struct {
	ParticleCount  int      `toml:"particle_count"`
	Ease           float64  `toml:"ease"` // fraction of remaining distance per frame
	Radius         float64  `toml:"radius"`
	Stride         int      `toml:"stride"`          // sampling grid step, pixels
	AlphaThreshold int      `toml:"alpha_threshold"` // keep cells with alpha above this
	ModeInterval   Duration `toml:"mode_interval"`
	HueSpeed       float64  `toml:"hue_speed"` // degrees per millisecond
	Saturation     float64  `toml:"saturation"`
	Lightness      float64  `toml:"lightness"`
	FadeIn         Duration `toml:"fade_in"`
	Twinkle        float64  `toml:"twinkle"` // radius noise amount, 0 disables
	Seed           uint64   `toml:"seed"`    // 0 picks a random seed
	Background     string   `toml:"background"`
	Debug          bool     `toml:"debug"`

	Primary   TextConfig `toml:"primary"`
	Secondary TextConfig `toml:"secondary"`
}

// DefaultConfig returns the stock swarm settings. The secondary text is Han,
// which the embedded Go Bold cannot render: set Secondary.Font to a CJK font
// file, or the swarm forms notdef boxes in that mode.
func DefaultConfig() Config {
	return Config{
		ParticleCount:  DefaultParticleCount,
		Ease:           DefaultEase,
		Radius:         DefaultRadius,
		Stride:         defaultStride,
		AlphaThreshold: defaultThreshold,
		ModeInterval:   Duration{DefaultModeInterval},
		HueSpeed:       DefaultHueSpeed,
		Saturation:     DefaultSaturation,
		Lightness:      DefaultLightness,
		FadeIn:         Duration{DefaultFadeIn},
		Background:     DefaultBackground,
		Primary:        TextConfig{Text: DefaultPrimaryText},
		Secondary:      TextConfig{Text: DefaultSecondaryText},
	}
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	return checkDecoded(cfg, md, err, "parse config")
}

// LoadConfig reads a TOML config file. See ParseConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	return checkDecoded(cfg, md, err, "load config "+path)
}

func checkDecoded(cfg Config, md toml.MetaData, err error, op string) (Config, error) {
	if err != nil {
		return Config{}, fmt.Errorf("glyphswarm: %s: %w", op, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("glyphswarm: %s: unknown keys %s", op, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.ParticleCount <= 0:
		return fmt.Errorf("glyphswarm: particle_count must be positive, got %d", c.ParticleCount)
	case c.Ease <= 0 || c.Ease > 1:
		return fmt.Errorf("glyphswarm: ease must be in (0, 1], got %v", c.Ease)
	case c.Radius <= 0:
		return fmt.Errorf("glyphswarm: radius must be positive, got %v", c.Radius)
	case c.Stride < 1:
		return fmt.Errorf("glyphswarm: stride must be at least 1, got %d", c.Stride)
	case c.AlphaThreshold < 1 || c.AlphaThreshold > 254:
		return fmt.Errorf("glyphswarm: alpha_threshold must be in [1, 254], got %d", c.AlphaThreshold)
	case c.ModeInterval.Duration <= 0:
		return fmt.Errorf("glyphswarm: mode_interval must be positive, got %v", c.ModeInterval)
	case c.Saturation < 0 || c.Saturation > 1:
		return fmt.Errorf("glyphswarm: saturation must be in [0, 1], got %v", c.Saturation)
	case c.Lightness < 0 || c.Lightness > 1:
		return fmt.Errorf("glyphswarm: lightness must be in [0, 1], got %v", c.Lightness)
	case c.FadeIn.Duration < 0:
		return fmt.Errorf("glyphswarm: fade_in must not be negative, got %v", c.FadeIn)
	case c.Twinkle < 0 || c.Twinkle > 1:
		return fmt.Errorf("glyphswarm: twinkle must be in [0, 1], got %v", c.Twinkle)
	case c.Primary.Text == "" || c.Secondary.Text == "":
		return fmt.Errorf("glyphswarm: both primary and secondary text are required")
	}
	if c.Background != "" {
		if _, err := ParseHex(c.Background); err != nil {
			return fmt.Errorf("glyphswarm: background: %w", err)
		}
	}
	return nil
}

// BackgroundColor returns the parsed background, or transparent when unset
// or invalid.
func (c Config) BackgroundColor() Color {
	if c.Background == "" {
		return ColorTransparent
	}
	bg, err := ParseHex(c.Background)
	if err != nil {
		return ColorTransparent
	}
	return bg
}

// loopOptions maps the config onto AnimationLoop options.
func (c Config) loopOptions(seed int64) LoopOptions {
	return LoopOptions{
		Ease:       c.Ease,
		Radius:     c.Radius,
		HueSpeed:   c.HueSpeed,
		Saturation: c.Saturation,
		Lightness:  c.Lightness,
		FadeIn:     c.FadeIn.Duration,
		Twinkle:    c.Twinkle,
		Seed:       seed,
		colorSet:   true,
	}
}
