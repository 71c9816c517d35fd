package slowquery

import (
	"context"
	"log"
	"time"

	"sharding/meta"
)

type MiddlewareBuilder struct {
	// 慢查询阈值
	threshold time.Duration
	logFunc   func(query string, args []any, duration time.Duration)
}

func NewMiddlewareBuilder(threshold time.Duration) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		logFunc: func(query string, args []any, duration time.Duration) {
			log.Printf("slow sql: %s ,args: %v ,duration: %s \n", query, args, duration)
		},
		threshold: threshold,
	}
}

func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any, duration time.Duration)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m MiddlewareBuilder) Build() meta.Middleware {
	return func(next meta.Handler) meta.Handler {
		return func(ctx context.Context, rc *meta.ResolveContext) *meta.ResolveResult {
			startTime := time.Now()
			defer func() {
				duration := time.Since(startTime)
				if duration < m.threshold {
					return
				}
				m.logFunc(rc.Query, rc.Args, duration)
			}()
			return next(ctx, rc)
		}
	}
}
