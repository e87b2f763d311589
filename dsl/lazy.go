package dsl

import (
	"context"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// Lazy defers field construction until first use, enabling mutually
// recursive declarations that cannot be expressed with Self alone. resolve
// runs at most once.
func Lazy(resolve func() jsonene.Field) jsonene.Field {
	return &lazyField{resolve: resolve}
}

type lazyField struct {
	resolve func() jsonene.Field
	field   jsonene.Field
}

func (l *lazyField) target() jsonene.Field {
	if l.field == nil {
		l.field = l.resolve()
	}
	return l.field
}

func (l *lazyField) Bind(raw any) *jsonene.Instance { return l.target().Bind(raw) }

func (l *lazyField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	return l.target().Validate(ctx, v, opt)
}

func (l *lazyField) JSONSchema(ex *js.Exporter) *js.Schema { return l.target().JSONSchema(ex) }
