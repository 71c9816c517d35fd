package querylog

import (
	"context"
	"log"

	"sharding/meta"
)

type MiddlewareBuilder struct {
	logFunc func(query string, args []any)
}

func NewMiddlewareBuilder() *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(query string, args []any) {
			log.Printf("sql: %s ,args: %v \n", query, args)
		},
	}
}

// LogFunc 交给用户输出
func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m MiddlewareBuilder) Build() meta.Middleware {
	return func(next meta.Handler) meta.Handler {
		return func(ctx context.Context, rc *meta.ResolveContext) *meta.ResolveResult {
			m.logFunc(rc.Query, rc.Args)
			return next(ctx, rc)
		}
	}
}
