package jsonutil

import (
	"context"
	"strings"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalCodecCompiled         = capitan.NewSignal("jsonutil.codec.compiled", "Codec compiled from a configuration")
	SignalBuilderCreated        = capitan.NewSignal("jsonutil.builder.created", "Codec session created")
	SignalAdapterParseFailed    = capitan.NewSignal("jsonutil.adapter.parse_failed", "Adapter could not parse its input")
	SignalAdapterPropertyFailed = capitan.NewSignal("jsonutil.adapter.property_failed", "Enum property could not be read")
)

// Keys for typed event data.
var (
	KeyFeatures     = capitan.NewStringKey("features")
	KeyFeatureCount = capitan.NewIntKey("feature_count")
	KeyAdapterCount = capitan.NewIntKey("adapter_count")
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyInput        = capitan.NewStringKey("input")
	KeyProperty     = capitan.NewStringKey("property")
	KeyError        = capitan.NewErrorKey("error")
)

// emitCodecCompiled emits an event when a configuration is compiled.
func emitCodecCompiled(ctx context.Context, features []Feature, adapters int) {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	capitan.Emit(ctx, SignalCodecCompiled,
		KeyFeatures.Field(strings.Join(names, ",")),
		KeyFeatureCount.Field(len(features)),
		KeyAdapterCount.Field(adapters),
	)
}

// emitBuilderCreated emits an event when a codec session is created.
func emitBuilderCreated(ctx context.Context) {
	capitan.Emit(ctx, SignalBuilderCreated)
}

// emitParseFailed reports input an adapter rejected.
func emitParseFailed(ctx context.Context, err *ParseError) {
	capitan.Error(ctx, SignalAdapterParseFailed,
		KeyTypeName.Field(err.Type),
		KeyInput.Field(err.Input),
		KeyError.Field(err),
	)
}

// emitPropertyFailed reports an enum property that was omitted.
func emitPropertyFailed(ctx context.Context, typeName, property string, err error) {
	capitan.Error(ctx, SignalAdapterPropertyFailed,
		KeyTypeName.Field(typeName),
		KeyProperty.Field(property),
		KeyError.Field(err),
	)
}
