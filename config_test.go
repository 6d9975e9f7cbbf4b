package jsonutil

import (
	"errors"
	"testing"
)

func TestDefaultConfig_AllDisabled(t *testing.T) {
	cfg := DefaultConfig()
	for _, f := range Features() {
		if cfg.Enabled(f) {
			t.Errorf("DefaultConfig().Enabled(%q) = true, want false", f)
		}
	}
	if len(cfg.Features()) != 0 {
		t.Errorf("DefaultConfig().Features() = %v, want none", cfg.Features())
	}
}

func TestConfig_WithWithout(t *testing.T) {
	for _, f := range Features() {
		t.Run(string(f), func(t *testing.T) {
			on := DefaultConfig().With(f)
			if !on.Enabled(f) {
				t.Errorf("With(%q).Enabled() = false", f)
			}
			if got := on.Features(); len(got) != 1 || got[0] != f {
				t.Errorf("With(%q).Features() = %v, want [%s]", f, got, f)
			}

			off := on.Without(f)
			if off.Enabled(f) {
				t.Errorf("Without(%q).Enabled() = true", f)
			}
			if off != DefaultConfig() {
				t.Errorf("With(%q).Without(%q) should equal DefaultConfig()", f, f)
			}
		})
	}
}

func TestConfig_IsValue(t *testing.T) {
	base := DefaultConfig()
	changed := base.WithDate()

	if base.Enabled(FeatureDate) {
		t.Error("WithDate() should not modify the receiver")
	}
	if !changed.Enabled(FeatureDate) {
		t.Error("WithDate() should return a config with date enabled")
	}
}

func TestConfig_NamedSetters(t *testing.T) {
	tests := []struct {
		name string
		with func(Config) Config
		no   func(Config) Config
		f    Feature
	}{
		{"expose", Config.WithExpose, Config.NoExpose, FeatureExpose},
		{"date", Config.WithDate, Config.NoDate, FeatureDate},
		{"local_date", Config.WithLocalDate, Config.NoLocalDate, FeatureLocalDate},
		{"local_date_time", Config.WithLocalDateTime, Config.NoLocalDateTime, FeatureLocalDateTime},
		{"xml_calendar", Config.WithXMLCalendar, Config.NoXMLCalendar, FeatureXMLCalendar},
		{"byte_array", Config.WithByteArray, Config.NoByteArray, FeatureByteArray},
		{"enum", Config.WithEnum, Config.NoEnum, FeatureEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			on := tt.with(DefaultConfig())
			if on != DefaultConfig().With(tt.f) {
				t.Errorf("%s setter should enable exactly %q, got %v", tt.name, tt.f, on.Features())
			}
			if off := tt.no(ConfigOf(Features()...)); off.Enabled(tt.f) || len(off.Features()) != len(Features())-1 {
				t.Errorf("%s clearer should disable exactly %q, got %v", tt.name, tt.f, off.Features())
			}
		})
	}
}

func TestConfig_UnknownFeatureIgnored(t *testing.T) {
	cfg := DefaultConfig().With("bogus")
	if cfg != DefaultConfig() {
		t.Error("With(unknown) should not change the config")
	}
	if cfg.Enabled("bogus") {
		t.Error("Enabled(unknown) should be false")
	}
}

func TestConfigOf_CompilationOrder(t *testing.T) {
	cfg := ConfigOf(FeatureEnum, FeatureDate, FeatureExpose)
	got := cfg.Features()
	want := []Feature{FeatureExpose, FeatureDate, FeatureEnum}

	if len(got) != len(want) {
		t.Fatalf("Features() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Features()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Config
	}{
		{
			name: "empty",
			doc:  ``,
			want: DefaultConfig(),
		},
		{
			name: "feature list",
			doc:  "features: [date, local_date, byte_array]\n",
			want: ConfigOf(FeatureDate, FeatureLocalDate, FeatureByteArray),
		},
		{
			name: "individual keys",
			doc:  "enum: true\nxml_calendar: true\nexpose: false\n",
			want: ConfigOf(FeatureEnum, FeatureXMLCalendar),
		},
		{
			name: "key overrides list",
			doc:  "features: [date, enum]\nenum: false\n",
			want: ConfigOf(FeatureDate),
		},
		{
			name: "json document",
			doc:  `{"features": ["local_date_time"], "expose": true}`,
			want: ConfigOf(FeatureLocalDateTime, FeatureExpose),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseConfig() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseConfig() = %v, want %v", got.Features(), tt.want.Features())
			}
		})
	}
}

func TestParseConfig_UnknownFeature(t *testing.T) {
	_, err := ParseConfig([]byte("features: [date, offset_date_time]\n"))
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("ParseConfig() error = %v, want ErrUnknownFeature", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatal("error should be a *ConfigError")
	}
	if cfgErr.Feature != "offset_date_time" {
		t.Errorf("Feature = %q, want %q", cfgErr.Feature, "offset_date_time")
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig([]byte("features: [date\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseConfig() error = %v, want ErrInvalidConfig", err)
	}
}
