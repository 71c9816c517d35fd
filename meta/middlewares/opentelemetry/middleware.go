package opentelemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sharding/meta"
)

const instrumentationName = "sharding/meta/middlewares/opentelemetry"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m MiddlewareBuilder) Build() meta.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next meta.Handler) meta.Handler {
		return func(ctx context.Context, rc *meta.ResolveContext) *meta.ResolveResult {
			// span name: resolve-orders
			spanCtx, span := m.Tracer.Start(ctx, fmt.Sprintf("resolve-%s", rc.Table))
			defer span.End()
			span.SetAttributes(
				attribute.String("sql", rc.Query),
				attribute.String("dialect", rc.Dialect),
				attribute.String("table", rc.Table),
				attribute.String("column", rc.Column),
				attribute.String("component", "meta"),
			)
			res := next(spanCtx, rc)
			if res.Err != nil {
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Err.Error())
				return res
			}
			span.SetAttributes(attribute.Bool("auto_increment", res.AutoIncrement))
			return res
		}
	}
}
