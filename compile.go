package jsonutil

import (
	"context"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Compile derives a new immutable Codec from cfg.
// Compilation is deterministic: equal configs yield codecs with identical
// behaviour.
func Compile(cfg Config) *Codec {
	table := adapterTable(cfg)

	api := jsoniter.Config{
		EscapeHTML:             !cfg.byteArray,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	ext := &extension{
		expose:   cfg.expose,
		enum:     cfg.enum,
		adapters: make(map[reflect.Type]*adapter, len(table)),
	}
	for _, a := range table {
		ext.adapters[a.typ] = a
	}
	api.RegisterExtension(ext)

	emitCodecCompiled(context.Background(), cfg.Features(), len(table))

	return &Codec{
		cfg:      cfg,
		api:      api,
		adapters: ext.adapters,
	}
}

// extension binds one adapter table into a frozen jsoniter API.
type extension struct {
	jsoniter.DummyExtension
	expose   bool
	enum     bool
	adapters map[reflect.Type]*adapter
}

func (e *extension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	if e.expose {
		applyExposure(sd)
	}
}

func (e *extension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	t := typ.Type1()
	if a, ok := e.adapters[t]; ok {
		return a.encoder
	}
	if t.Kind() == reflect.Pointer {
		if a, ok := e.adapters[t.Elem()]; ok && a.ptrEncoder != nil {
			return a.ptrEncoder
		}
	}
	if e.enum && isEnumType(t) {
		return &enumEncoder{typ: t}
	}
	return nil
}

func (e *extension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	t := typ.Type1()
	if a, ok := e.adapters[t]; ok {
		return a.decoder
	}
	if t.Kind() == reflect.Pointer {
		if a, ok := e.adapters[t.Elem()]; ok && a.ptrDecoder != nil {
			return a.ptrDecoder
		}
	}
	if e.enum && isEnumType(t) {
		return &enumDecoder{typ: t}
	}
	return nil
}
