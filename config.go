package jsonutil

import (
	"gopkg.in/yaml.v3"
)

// Config is an immutable set of feature flags.
// Methods return modified copies; a Config is safe to share and to use as a
// map key.
type Config struct {
	expose        bool
	date          bool
	localDate     bool
	localDateTime bool
	xmlCalendar   bool
	byteArray     bool
	enum          bool
}

// DefaultConfig returns a Config with every feature disabled.
func DefaultConfig() Config {
	return Config{}
}

// ConfigOf returns a Config with exactly the given features enabled.
func ConfigOf(features ...Feature) Config {
	var c Config
	for _, f := range features {
		c = c.With(f)
	}
	return c
}

// With returns a copy of c with f enabled. Unknown features are ignored.
func (c Config) With(f Feature) Config {
	if p := c.flag(f); p != nil {
		*p = true
	}
	return c
}

// Without returns a copy of c with f disabled. Unknown features are ignored.
func (c Config) Without(f Feature) Config {
	if p := c.flag(f); p != nil {
		*p = false
	}
	return c
}

// Enabled reports whether f is active in c.
func (c Config) Enabled(f Feature) bool {
	if p := c.flag(f); p != nil {
		return *p
	}
	return false
}

// Features returns the enabled features in compilation order.
func (c Config) Features() []Feature {
	out := make([]Feature, 0, len(allFeatures))
	for _, f := range allFeatures {
		if c.Enabled(f) {
			out = append(out, f)
		}
	}
	return out
}

// flag returns a pointer into the receiver copy for f.
func (c *Config) flag(f Feature) *bool {
	switch f {
	case FeatureExpose:
		return &c.expose
	case FeatureDate:
		return &c.date
	case FeatureLocalDate:
		return &c.localDate
	case FeatureLocalDateTime:
		return &c.localDateTime
	case FeatureXMLCalendar:
		return &c.xmlCalendar
	case FeatureByteArray:
		return &c.byteArray
	case FeatureEnum:
		return &c.enum
	}
	return nil
}

// WithExpose returns a copy of c with the expose feature enabled.
func (c Config) WithExpose() Config { return c.With(FeatureExpose) }

// NoExpose returns a copy of c with the expose feature disabled.
func (c Config) NoExpose() Config { return c.Without(FeatureExpose) }

// WithDate returns a copy of c with the date feature enabled.
func (c Config) WithDate() Config { return c.With(FeatureDate) }

// NoDate returns a copy of c with the date feature disabled.
func (c Config) NoDate() Config { return c.Without(FeatureDate) }

// WithLocalDate returns a copy of c with the local_date feature enabled.
func (c Config) WithLocalDate() Config { return c.With(FeatureLocalDate) }

// NoLocalDate returns a copy of c with the local_date feature disabled.
func (c Config) NoLocalDate() Config { return c.Without(FeatureLocalDate) }

// WithLocalDateTime returns a copy of c with the local_date_time feature enabled.
func (c Config) WithLocalDateTime() Config { return c.With(FeatureLocalDateTime) }

// NoLocalDateTime returns a copy of c with the local_date_time feature disabled.
func (c Config) NoLocalDateTime() Config { return c.Without(FeatureLocalDateTime) }

// WithXMLCalendar returns a copy of c with the xml_calendar feature enabled.
func (c Config) WithXMLCalendar() Config { return c.With(FeatureXMLCalendar) }

// NoXMLCalendar returns a copy of c with the xml_calendar feature disabled.
func (c Config) NoXMLCalendar() Config { return c.Without(FeatureXMLCalendar) }

// WithByteArray returns a copy of c with the byte_array feature enabled.
func (c Config) WithByteArray() Config { return c.With(FeatureByteArray) }

// NoByteArray returns a copy of c with the byte_array feature disabled.
func (c Config) NoByteArray() Config { return c.Without(FeatureByteArray) }

// WithEnum returns a copy of c with the enum feature enabled.
func (c Config) WithEnum() Config { return c.With(FeatureEnum) }

// NoEnum returns a copy of c with the enum feature disabled.
func (c Config) NoEnum() Config { return c.Without(FeatureEnum) }

// configFile is the on-disk shape accepted by ParseConfig.
// Features may be listed, set individually, or both; a listed feature is
// enabled even when its individual key is absent.
type configFile struct {
	Features      []string `yaml:"features"`
	Expose        *bool    `yaml:"expose"`
	Date          *bool    `yaml:"date"`
	LocalDate     *bool    `yaml:"local_date"`
	LocalDateTime *bool    `yaml:"local_date_time"`
	XMLCalendar   *bool    `yaml:"xml_calendar"`
	ByteArray     *bool    `yaml:"byte_array"`
	Enum          *bool    `yaml:"enum"`
}

// ParseConfig reads a Config from a YAML (or JSON) document:
//
//	features: [date, local_date, byte_array]
//	enum: true
//
// Individual keys override the list. Unknown feature names fail with
// ErrUnknownFeature.
func ParseConfig(data []byte) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, newConfigError(ErrInvalidConfig, "", err)
	}

	var c Config
	for _, name := range file.Features {
		f := Feature(name)
		if !IsValidFeature(f) {
			return Config{}, newConfigError(ErrUnknownFeature, name, nil)
		}
		c = c.With(f)
	}

	overrides := []struct {
		f Feature
		v *bool
	}{
		{FeatureExpose, file.Expose},
		{FeatureDate, file.Date},
		{FeatureLocalDate, file.LocalDate},
		{FeatureLocalDateTime, file.LocalDateTime},
		{FeatureXMLCalendar, file.XMLCalendar},
		{FeatureByteArray, file.ByteArray},
		{FeatureEnum, file.Enum},
	}
	for _, o := range overrides {
		if o.v == nil {
			continue
		}
		if *o.v {
			c = c.With(o.f)
		} else {
			c = c.Without(o.f)
		}
	}

	return c, nil
}
