package jsonutil

import (
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	b := New()

	if b.Config() != DefaultConfig() {
		t.Errorf("New().Config() = %v, want none", b.Config().Features())
	}
	if b.Stale() {
		t.Error("New() should not be stale")
	}
	if b.Codec() == nil {
		t.Fatal("New() should compile a codec")
	}
	if got := b.Codec().Adapters(); len(got) != 1 || got[0] != "OffsetDateTime" {
		t.Errorf("New().Codec().Adapters() = %v, want [OffsetDateTime]", got)
	}
	if got := b.ContentType(); got != ContentType {
		t.Errorf("ContentType() = %q, want %q", got, ContentType)
	}
}

func TestNew_Concurrent(t *testing.T) {
	const n = 32
	builders := make([]*Builder, n)

	var wg sync.WaitGroup
	for i := range builders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			builders[i] = New()
		}(i)
	}
	wg.Wait()

	seen := make(map[*Builder]bool, n)
	codecs := make(map[*Codec]bool, n)
	for i, b := range builders {
		if b == nil {
			t.Fatalf("goroutine %d got a nil Builder", i)
		}
		if seen[b] {
			t.Errorf("goroutine %d got a Builder already handed out", i)
		}
		seen[b] = true
		codecs[b.Codec()] = true

		if b.Stale() {
			t.Errorf("goroutine %d got a stale Builder", i)
		}
		if got := b.Codec().Adapters(); len(got) != 1 || got[0] != "OffsetDateTime" {
			t.Errorf("goroutine %d Adapters() = %v, want [OffsetDateTime]", i, got)
		}
	}
	if len(codecs) != n {
		t.Errorf("sessions share codecs: %d distinct, want %d", len(codecs), n)
	}

	// Mutating one session must not leak into another.
	builders[0].WithDate()
	if builders[1].Codec().Config().Enabled(FeatureDate) {
		t.Error("a setter on one Builder changed another")
	}
}

func TestBuilder_Eager(t *testing.T) {
	b := New()
	before := b.Codec()

	b.WithDate()

	if b.Stale() {
		t.Error("eager change should not leave the builder stale")
	}
	if b.Codec() == before {
		t.Error("eager change should recompile")
	}
	if !b.Codec().Config().Enabled(FeatureDate) {
		t.Error("compiled codec should have date enabled")
	}

	got, err := b.Encode(NewDate(time.Date(2024, 3, 7, 10, 15, 30, 0, time.Local)))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got != `"2024-03-07T10:15:30"` {
		t.Errorf("Encode() = %s, want \"2024-03-07T10:15:30\"", got)
	}
}

func TestBuilder_ExplicitEager(t *testing.T) {
	b := New().WithLocalDate(Eager)
	if b.Stale() || !b.Codec().Config().Enabled(FeatureLocalDate) {
		t.Error("WithLocalDate(Eager) should compile immediately")
	}
}

func TestBuilder_LazyReadsStaleCodec(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 7, 10, 15, 30, 0, time.Local))
	want, err := Compile(DefaultConfig()).Encode(d)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	b := New()
	before := b.Codec()
	b.WithDate(Lazy)

	if !b.Stale() {
		t.Error("lazy change should leave the builder stale")
	}
	if b.Codec() != before {
		t.Error("lazy change should not recompile")
	}
	if !b.Config().Enabled(FeatureDate) {
		t.Error("pending config should have date enabled")
	}

	got, err := b.Encode(d)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got != want {
		t.Errorf("stale Encode() = %s, want %s", got, want)
	}

	b.Build()
	if b.Stale() {
		t.Error("Build() should clear the stale state")
	}
	got, err = b.Encode(d)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got != `"2024-03-07T10:15:30"` {
		t.Errorf("Encode() after Build() = %s, want \"2024-03-07T10:15:30\"", got)
	}
}

func TestBuilder_LazyChangesAccumulate(t *testing.T) {
	b := New().
		WithDate(Lazy).
		WithLocalDate(Lazy).
		Build()

	cfg := b.Codec().Config()
	if !cfg.Enabled(FeatureDate) || !cfg.Enabled(FeatureLocalDate) {
		t.Errorf("Build() compiled %v, want date and local_date", cfg.Features())
	}

	got, err := b.Encode(NewLocalDate(2024, 3, 7))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got != `"2024-03-07"` {
		t.Errorf("Encode() = %s, want \"2024-03-07\"", got)
	}
}

func TestBuilder_LazyThenEager(t *testing.T) {
	b := New().WithByteArray(Lazy).WithEnum()

	cfg := b.Codec().Config()
	if !cfg.Enabled(FeatureByteArray) || !cfg.Enabled(FeatureEnum) {
		t.Errorf("eager change should compile pending lazy changes too, got %v", cfg.Features())
	}
}

func TestBuilder_Setters(t *testing.T) {
	tests := []struct {
		feature Feature
		with    func(*Builder, ...BuildType) *Builder
		no      func(*Builder, ...BuildType) *Builder
	}{
		{FeatureExpose, (*Builder).WithExpose, (*Builder).NoExpose},
		{FeatureDate, (*Builder).WithDate, (*Builder).NoDate},
		{FeatureLocalDate, (*Builder).WithLocalDate, (*Builder).NoLocalDate},
		{FeatureLocalDateTime, (*Builder).WithLocalDateTime, (*Builder).NoLocalDateTime},
		{FeatureXMLCalendar, (*Builder).WithXMLCalendar, (*Builder).NoXMLCalendar},
		{FeatureByteArray, (*Builder).WithByteArray, (*Builder).NoByteArray},
		{FeatureEnum, (*Builder).WithEnum, (*Builder).NoEnum},
	}

	for _, tt := range tests {
		t.Run(string(tt.feature), func(t *testing.T) {
			b := New()

			tt.with(b)
			if got := b.Codec().Config().Features(); len(got) != 1 || got[0] != tt.feature {
				t.Errorf("With setter compiled %v, want [%s]", got, tt.feature)
			}

			tt.no(b, Lazy)
			if !b.Stale() {
				t.Error("lazy No setter should leave the builder stale")
			}
			if !b.Codec().Config().Enabled(tt.feature) {
				t.Error("lazy No setter should not touch the compiled codec")
			}

			b.Build()
			if b.Codec().Config() != DefaultConfig() {
				t.Errorf("No setter compiled %v, want none", b.Codec().Config().Features())
			}
		})
	}
}

func TestBuilder_SetRevertClearsStale(t *testing.T) {
	b := New()
	b.Set(FeatureXMLCalendar, true, Lazy)
	b.Set(FeatureXMLCalendar, false, Lazy)

	if b.Stale() {
		t.Error("reverting a lazy change should leave nothing pending")
	}
}

func TestBuilder_Delegates(t *testing.T) {
	b := New().WithLocalDate()

	data, err := b.Marshal(NewLocalDate(2024, 3, 7))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var d LocalDate
	if err := b.Unmarshal(data, &d); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if d != NewLocalDate(2024, 3, 7) {
		t.Errorf("Unmarshal() = %v, want 2024-03-07", d)
	}

	var d2 LocalDate
	if err := b.Decode(`"2024-03-08"`, &d2); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if d2 != NewLocalDate(2024, 3, 8) {
		t.Errorf("Decode() = %v, want 2024-03-08", d2)
	}

	m, err := b.DecodeToMap(`{"k":"v"}`)
	if err != nil {
		t.Fatalf("DecodeToMap() error: %v", err)
	}
	if m["k"] != "v" {
		t.Errorf("DecodeToMap()[k] = %v, want v", m["k"])
	}
}

func TestBuildType_String(t *testing.T) {
	tests := []struct {
		bt   BuildType
		want string
	}{
		{Eager, "eager"},
		{Lazy, "lazy"},
		{BuildType(9), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.bt.String(); got != tt.want {
			t.Errorf("BuildType(%d).String() = %q, want %q", int(tt.bt), got, tt.want)
		}
	}
}
