package hydrate

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for hydration events.
var (
	SignalSourceMissing   = capitan.NewSignal("hydrate.source.missing", "Object missing property when hydrating")
	SignalFieldMissing    = capitan.NewSignal("hydrate.field.missing", "Entity missing property when hydrating")
	SignalMetadataBuilt   = capitan.NewSignal("hydrate.metadata.built", "Entity field metadata cached")
	SignalHydrateStart    = capitan.NewSignal("hydrate.start", "Hydration beginning")
	SignalHydrateComplete = capitan.NewSignal("hydrate.complete", "Hydration finished")
	SignalRecordDecoded   = capitan.NewSignal("hydrate.record.decoded", "Encoded record decoded")
)

// Keys for typed event data.
var (
	KeyEntityType  = capitan.NewStringKey("entity_type")
	KeySourceKey   = capitan.NewStringKey("source_key")
	KeyTargetField = capitan.NewStringKey("target_field")
	KeyMessage     = capitan.NewStringKey("message")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeySize        = capitan.NewIntKey("size")
	KeyAssigned    = capitan.NewIntKey("assigned")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// Logger receives non-fatal field-level problems. msg is the rendered
// message; fields carry the same context in structured form.
type Logger interface {
	Warn(ctx context.Context, signal capitan.Signal, msg string, fields ...capitan.Field)
}

// capitanLogger emits warnings as capitan events.
type capitanLogger struct{}

func (capitanLogger) Warn(ctx context.Context, signal capitan.Signal, msg string, fields ...capitan.Field) {
	capitan.Warn(ctx, signal, append(fields, KeyMessage.Field(msg))...)
}

// warnSourceMissing reports a mapping entry whose source key is absent.
func warnSourceMissing(ctx context.Context, l Logger, entityType, sourceKey string) {
	l.Warn(ctx, SignalSourceMissing,
		"object missing property "+sourceKey+" when hydrating "+entityType,
		KeySourceKey.Field(sourceKey),
		KeyEntityType.Field(entityType),
	)
}

// warnFieldMissing reports a mapping entry whose target field is absent.
func warnFieldMissing(ctx context.Context, l Logger, entityType, targetField, sourceKey string) {
	l.Warn(ctx, SignalFieldMissing,
		"entity missing property "+targetField+" for "+sourceKey+" when hydrating "+entityType,
		KeyTargetField.Field(targetField),
		KeySourceKey.Field(sourceKey),
		KeyEntityType.Field(entityType),
	)
}

// emitMetadataBuilt emits an event when an entity's field set is cached.
func emitMetadataBuilt(ctx context.Context, entityType string, fieldCount int) {
	capitan.Emit(ctx, SignalMetadataBuilt,
		KeyEntityType.Field(entityType),
		KeyFieldCount.Field(fieldCount),
	)
}

// emitHydrateStart emits an event when hydration begins.
func emitHydrateStart(ctx context.Context, entityType string, entries int) {
	capitan.Emit(ctx, SignalHydrateStart,
		KeyEntityType.Field(entityType),
		KeyFieldCount.Field(entries),
	)
}

// emitHydrateComplete emits an event when hydration finishes.
func emitHydrateComplete(ctx context.Context, entityType string, duration time.Duration, assigned int, err error) {
	fields := []capitan.Field{
		KeyEntityType.Field(entityType),
		KeyDuration.Field(duration),
		KeyAssigned.Field(assigned),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalHydrateComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalHydrateComplete, fields...)
	}
}

// emitRecordDecoded emits an event when a codec has decoded a record.
func emitRecordDecoded(ctx context.Context, contentType string, size, keys int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyFieldCount.Field(keys),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRecordDecoded, fields...)
	} else {
		capitan.Emit(ctx, SignalRecordDecoded, fields...)
	}
}
