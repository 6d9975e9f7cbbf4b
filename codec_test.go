package jsonutil

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCodec_ContentType(t *testing.T) {
	codec := Compile(DefaultConfig())
	if got := codec.ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want %q", got, "application/json")
	}
}

func TestCodec_MarshalUnmarshal(t *testing.T) {
	type record struct {
		ID   int       `json:"id"`
		Day  LocalDate `json:"day"`
		Tags []string  `json:"tags"`
	}
	var m Marshaler = Compile(DefaultConfig().WithLocalDate())

	data, err := m.Marshal(record{ID: 1, Day: NewLocalDate(2024, 3, 7), Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if want := `{"id":1,"day":"2024-03-07","tags":["a"]}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got record
	if err := m.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.ID != 1 || got.Day != NewLocalDate(2024, 3, 7) || len(got.Tags) != 1 {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

func TestCodec_DecodeToMap(t *testing.T) {
	codec := Compile(DefaultConfig())

	got, err := codec.DecodeToMap(`{"a":1,"b":{"c":[1,"x",true]},"d":null,"e":"text"}`)
	if err != nil {
		t.Fatalf("DecodeToMap() error: %v", err)
	}
	want := map[string]any{
		"a": float64(1),
		"b": map[string]any{"c": []any{float64(1), "x", true}},
		"d": nil,
		"e": "text",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeToMap() = %#v, want %#v", got, want)
	}
}

func TestCodec_DecodeToMapNull(t *testing.T) {
	got, err := Compile(DefaultConfig()).DecodeToMap(`null`)
	if err != nil {
		t.Fatalf("DecodeToMap(null) error: %v", err)
	}
	if got != nil {
		t.Errorf("DecodeToMap(null) = %v, want nil", got)
	}
}

func TestCodec_DecodeToMapNotObject(t *testing.T) {
	codec := Compile(DefaultConfig())

	for _, in := range []string{`[1,2]`, `"text"`, `{"a":`} {
		t.Run(in, func(t *testing.T) {
			_, err := codec.DecodeToMap(in)
			if !errors.Is(err, ErrUnmarshal) {
				t.Errorf("DecodeToMap(%s) error = %v, want ErrUnmarshal", in, err)
			}
		})
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	codec := Compile(DefaultConfig())

	var v struct {
		N int `json:"n"`
	}
	err := codec.Decode(`{"n":"x"}`, &v)
	if err == nil {
		t.Fatal("Decode() should fail on a type mismatch")
	}
	if !errors.Is(err, ErrUnmarshal) {
		t.Errorf("error should wrap ErrUnmarshal, got %v", err)
	}

	var codecErr *CodecError
	if !errors.As(err, &codecErr) {
		t.Fatalf("error should be a CodecError, got %T", err)
	}
	if codecErr.Cause == nil {
		t.Error("CodecError.Cause should carry the engine error")
	}
	if !strings.HasPrefix(err.Error(), "unmarshal failed: ") {
		t.Errorf("Error() = %q, want prefix %q", err.Error(), "unmarshal failed: ")
	}
}

func TestCodec_DecodeTrailingData(t *testing.T) {
	codec := Compile(DefaultConfig())

	var n int
	if err := codec.Decode(`1 2`, &n); !errors.Is(err, ErrUnmarshal) {
		t.Errorf("Decode(\"1 2\") error = %v, want ErrUnmarshal", err)
	}
}

func TestCodec_EncodeErrors(t *testing.T) {
	codec := Compile(DefaultConfig())

	_, err := codec.Encode(make(chan int))
	if !errors.Is(err, ErrMarshal) {
		t.Errorf("Encode(chan) error = %v, want ErrMarshal", err)
	}

	_, err = codec.Marshal(func() {})
	if !errors.Is(err, ErrMarshal) {
		t.Errorf("Marshal(func) error = %v, want ErrMarshal", err)
	}
}

func TestDecode_Generic(t *testing.T) {
	codec := Compile(DefaultConfig().WithLocalDate())

	got, err := Decode[[]LocalDate](codec, `["2024-03-07","2024-03-08"]`)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want := []LocalDate{NewLocalDate(2024, 3, 7), NewLocalDate(2024, 3, 8)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %v, want %v", got, want)
	}

	m, err := Decode[map[string]LocalDate](codec, `{"start":"2024-01-01"}`)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if m["start"] != NewLocalDate(2024, 1, 1) {
		t.Errorf("Decode()[start] = %v, want 2024-01-01", m["start"])
	}

	n, err := Decode[int](codec, `"x"`)
	if err == nil {
		t.Error("Decode[int](\"x\") should fail")
	}
	if n != 0 {
		t.Errorf("failed Decode() = %d, want zero value", n)
	}
}

func TestCodec_Streaming(t *testing.T) {
	codec := Compile(DefaultConfig().WithLocalDate())

	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf)
	for _, d := range []LocalDate{NewLocalDate(2024, 3, 7), NewLocalDate(2024, 3, 8)} {
		if err := enc.Encode(d); err != nil {
			t.Fatalf("Encoder.Encode() error: %v", err)
		}
	}
	if want := "\"2024-03-07\"\n\"2024-03-08\"\n"; buf.String() != want {
		t.Errorf("stream = %q, want %q", buf.String(), want)
	}

	dec := codec.NewDecoder(strings.NewReader(buf.String()))
	var got []LocalDate
	for dec.More() {
		var d LocalDate
		if err := dec.Decode(&d); err != nil {
			t.Fatalf("Decoder.Decode() error: %v", err)
		}
		got = append(got, d)
	}
	want := []LocalDate{NewLocalDate(2024, 3, 7), NewLocalDate(2024, 3, 8)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("streamed = %v, want %v", got, want)
	}
}
